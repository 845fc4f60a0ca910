package publish

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/github"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	"github.com/ignithex/femtobot/cmd/releaser/utils"
	glog "github.com/magicsong/color-glog"
)

// DesiredAsset is one file the release should carry. Only files that
// exist on disk at publish time are uploaded; the rest are skipped
// with a warning (a checksum sidecar is optional if no digest tool
// ran on the build host).
type DesiredAsset struct {
	Name string
	Path string
}

// Tag is the release tag for a bare version string.
func Tag(version string) string {
	return "v" + version
}

// IsPrerelease applies the hyphen convention: any version carrying a
// `-` suffix, e.g. 1.0.0-rc1, is marked prerelease.
func IsPrerelease(version string) bool {
	return strings.Contains(version, "-")
}

type state int

const (
	stateResolve state = iota
	stateCreate
	stateValidate
	stateReconcile
	stateDone
)

type publisher struct {
	client  *github.Client
	version string
	body    string
	assets  []DesiredAsset
	release *types.ReleaseInfo
}

// Publish drives the release through resolve, create-if-absent,
// validate and reconcile, in that order, and returns the release's
// public URL. Reruns for the same version converge: the release is
// reused, never duplicated, and each asset name ends up attached
// exactly once.
func Publish(client *github.Client, version, body string, assets []DesiredAsset) (string, error) {
	if body == "" {
		body = fmt.Sprintf(constants.ReleaseBodyFormat, version)
	}
	p := &publisher{client: client, version: version, body: body, assets: assets}
	current := stateResolve
	for current != stateDone {
		next, err := p.step(current)
		if err != nil {
			return "", err
		}
		current = next
	}
	return p.release.HTMLURL, nil
}

func (p *publisher) step(current state) (state, error) {
	switch current {
	case stateResolve:
		return p.resolve()
	case stateCreate:
		return p.create()
	case stateValidate:
		return p.validate()
	case stateReconcile:
		return p.reconcile()
	}
	return stateDone, fmt.Errorf("publisher reached unknown state %d", current)
}

func (p *publisher) resolve() (state, error) {
	tag := Tag(p.version)
	release, err := p.client.ReleaseByTag(tag)
	if errors.Is(err, github.ErrReleaseNotFound) {
		glog.Infof("No release for tag %s yet, will create one", tag)
		return stateCreate, nil
	}
	if err != nil {
		return stateDone, err
	}
	glog.Infof("Reusing existing release id=%d for tag %s", release.ID, tag)
	p.release = release
	return stateValidate, nil
}

func (p *publisher) create() (state, error) {
	request := types.ReleaseRequest{
		TagName:    Tag(p.version),
		Name:       fmt.Sprintf("%s %s", constants.ProjectName, Tag(p.version)),
		Body:       p.body,
		Draft:      false,
		Prerelease: IsPrerelease(p.version),
	}
	glog.Infof("Creating release %s (prerelease=%t)", request.TagName, request.Prerelease)
	release, err := p.client.CreateRelease(request)
	if err != nil {
		return stateDone, err
	}
	p.release = release
	return stateValidate, nil
}

// validate checks the fields the reconcile step cannot work without.
// A release response missing either one means the API contract or the
// credential is broken, not a retryable condition.
func (p *publisher) validate() (state, error) {
	if p.release.ID == 0 {
		return stateDone, fmt.Errorf("release response for tag %s carries no id, check %s and the API response",
			Tag(p.version), constants.TokenEnvVar)
	}
	if p.release.UploadURL == "" {
		return stateDone, fmt.Errorf("release response for tag %s carries no upload_url, check %s and the API response",
			Tag(p.version), constants.TokenEnvVar)
	}
	return stateReconcile, nil
}

// reconcile makes the remote asset set match the desired local one.
// Upload endpoints for this API reject duplicate names, so an asset
// that already exists under the same name is deleted first.
func (p *publisher) reconcile() (state, error) {
	for _, asset := range p.assets {
		if !utils.IsFileExists(asset.Path) {
			glog.Warningf("Skipping asset %s: file %s not found locally", asset.Name, asset.Path)
			continue
		}
		existing, err := p.client.ListAssets(p.release.ID)
		if err != nil {
			return stateDone, err
		}
		for _, remote := range existing {
			if remote.Name != asset.Name {
				continue
			}
			glog.Infof("Deleting stale asset %s (id=%d) before re-upload", remote.Name, remote.ID)
			if err := p.client.DeleteAsset(remote.ID); err != nil {
				return stateDone, err
			}
		}
		if _, err := p.client.UploadAsset(p.release.UploadURL, asset.Name, asset.Path); err != nil {
			return stateDone, err
		}
	}
	return stateDone, nil
}
