package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ignithex/femtobot/cmd/releaser/constants"
	"github.com/ignithex/femtobot/cmd/releaser/types"
	glog "github.com/magicsong/color-glog"
)

// ErrReleaseNotFound reports a tag with no release behind it. The
// publisher's resolve step treats it as "create one", every other
// caller treats it as fatal.
var ErrReleaseNotFound = errors.New("release not found")

// Client talks to the releases surface of the GitHub REST API for one
// repository. BaseURL is the repo API root without a trailing slash,
// e.g. https://api.github.com/repos/ignithex/femtobot.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient builds a client for a repo slug like "ignithex/femtobot".
func NewClient(repo, token string) *Client {
	return &Client{
		BaseURL: fmt.Sprintf(constants.APIBaseURLFormat, repo),
		Token:   token,
		HTTP:    http.DefaultClient,
	}
}

// do issues one API request and hands back the raw response body.
// Error responses surface the body verbatim for diagnosis.
func (c *Client) do(method, url string, contentType string, body io.Reader, contentLength int64) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "token "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if contentLength > 0 {
		req.ContentLength = contentLength
	}
	glog.V(5).Infof("api request method=%s url=%s", method, url)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	glog.V(9).Infof("api response status=%d bytes=%d", resp.StatusCode, len(content))
	return content, resp.StatusCode, nil
}

// ReleaseByTag fetches the release for tag, or ErrReleaseNotFound.
func (c *Client) ReleaseByTag(tag string) (*types.ReleaseInfo, error) {
	url := fmt.Sprintf("%s/releases/tags/%s", c.BaseURL, tag)
	content, status, err := c.do(http.MethodGet, url, "", nil, 0)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrReleaseNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d fetching release for tag %s: %s", status, tag, string(content))
	}
	var info types.ReleaseInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("decoding release for tag %s: %w: %s", tag, err, string(content))
	}
	return &info, nil
}

// CreateRelease submits a new release for the request's tag.
func (c *Client) CreateRelease(request types.ReleaseRequest) (*types.ReleaseInfo, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/releases", c.BaseURL)
	content, status, err := c.do(http.MethodPost, url, "application/json", bytes.NewReader(payload), 0)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("HTTP %d creating release %s: %s", status, request.TagName, string(content))
	}
	var info types.ReleaseInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("decoding created release %s: %w: %s", request.TagName, err, string(content))
	}
	return &info, nil
}

// ListAssets enumerates the assets currently attached to a release.
func (c *Client) ListAssets(releaseID int64) ([]types.AssetInfo, error) {
	url := fmt.Sprintf("%s/releases/%d/assets", c.BaseURL, releaseID)
	content, status, err := c.do(http.MethodGet, url, "", nil, 0)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d listing assets for release %d: %s", status, releaseID, string(content))
	}
	var assets []types.AssetInfo
	if err := json.Unmarshal(content, &assets); err != nil {
		return nil, fmt.Errorf("decoding asset list for release %d: %w: %s", releaseID, err, string(content))
	}
	return assets, nil
}

// DeleteAsset removes one asset by id.
func (c *Client) DeleteAsset(assetID int64) error {
	url := fmt.Sprintf("%s/releases/assets/%d", c.BaseURL, assetID)
	content, status, err := c.do(http.MethodDelete, url, "", nil, 0)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("HTTP %d deleting asset %d: %s", status, assetID, string(content))
	}
	return nil
}

// UploadURL expands a release's upload endpoint template for one
// asset name. The API hands the endpoint back in hypermedia form,
// `.../assets{?name,label}`, so the template suffix is trimmed first.
func UploadURL(uploadURL, assetName string) string {
	if idx := strings.Index(uploadURL, "{"); idx != -1 {
		uploadURL = uploadURL[:idx]
	}
	return fmt.Sprintf("%s?name=%s", uploadURL, url.QueryEscape(assetName))
}

// UploadAsset streams a local file as a new asset under assetName,
// with the file's byte length declared on the request.
func (c *Client) UploadAsset(uploadURL, assetName, path string) (*types.AssetInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	url := UploadURL(uploadURL, assetName)
	glog.Infof("Uploading %s (%d bytes)", assetName, info.Size())
	content, status, err := c.do(http.MethodPost, url, "application/octet-stream", file, info.Size())
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("HTTP %d uploading asset %s: %s", status, assetName, string(content))
	}
	var asset types.AssetInfo
	if err := json.Unmarshal(content, &asset); err != nil {
		return nil, fmt.Errorf("decoding uploaded asset %s: %w: %s", assetName, err, string(content))
	}
	return &asset, nil
}
