package github

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ignithex/femtobot/cmd/releaser/types"
	"github.com/stretchr/testify/require"
)

func TestReleaseByTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token test-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/releases/tags/v1.0.0":
			json.NewEncoder(w).Encode(types.ReleaseInfo{
				ID:        17,
				TagName:   "v1.0.0",
				UploadURL: "https://uploads.example.com/releases/17/assets{?name,label}",
				HTMLURL:   "https://example.com/releases/v1.0.0",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	client := &Client{BaseURL: server.URL, Token: "test-token", HTTP: server.Client()}

	release, err := client.ReleaseByTag("v1.0.0")
	require.NoError(t, err)
	require.Equal(t, int64(17), release.ID)
	require.Equal(t, "https://example.com/releases/v1.0.0", release.HTMLURL)

	_, err = client.ReleaseByTag("v9.9.9")
	require.ErrorIs(t, err, ErrReleaseNotFound)
}

func TestCreateRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/releases", r.URL.Path)
		var request types.ReleaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Equal(t, "v1.0.0-rc1", request.TagName)
		require.True(t, request.Prerelease)
		require.False(t, request.Draft)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.ReleaseInfo{ID: 1, TagName: request.TagName, UploadURL: "u"})
	}))
	defer server.Close()
	client := &Client{BaseURL: server.URL, Token: "test-token", HTTP: server.Client()}

	release, err := client.CreateRelease(types.ReleaseRequest{
		TagName:    "v1.0.0-rc1",
		Name:       "femtobot v1.0.0-rc1",
		Prerelease: true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), release.ID)
}

func TestCreateReleaseErrorSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Validation Failed"}`))
	}))
	defer server.Close()
	client := &Client{BaseURL: server.URL, Token: "test-token", HTTP: server.Client()}

	_, err := client.CreateRelease(types.ReleaseRequest{TagName: "v0.0.1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Validation Failed")
}

func TestListAndDeleteAssets(t *testing.T) {
	deleted := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/releases/17/assets":
			json.NewEncoder(w).Encode([]types.AssetInfo{
				{ID: 100, Name: "femtobot-linux-x86_64"},
				{ID: 101, Name: "femtobot-linux-x86_64.sha256"},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/releases/assets/100":
			deleted = append(deleted, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	client := &Client{BaseURL: server.URL, Token: "test-token", HTTP: server.Client()}

	assets, err := client.ListAssets(17)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	require.Equal(t, "femtobot-linux-x86_64", assets[0].Name)

	require.NoError(t, client.DeleteAsset(100))
	require.Equal(t, []string{"/releases/assets/100"}, deleted)
}

func TestUploadAsset(t *testing.T) {
	payload := []byte("femtobot binary bytes")
	dir := t.TempDir()
	path := filepath.Join(dir, "femtobot-linux-x86_64")
	require.NoError(t, os.WriteFile(path, payload, 0755))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload/17", r.URL.Path)
		require.Equal(t, "femtobot-linux-x86_64", r.URL.Query().Get("name"))
		require.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		require.Equal(t, int64(len(payload)), r.ContentLength)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.AssetInfo{ID: 5, Name: "femtobot-linux-x86_64"})
	}))
	defer server.Close()
	client := &Client{BaseURL: server.URL, Token: "test-token", HTTP: server.Client()}

	uploadURL := server.URL + "/upload/17{?name,label}"
	asset, err := client.UploadAsset(uploadURL, "femtobot-linux-x86_64", path)
	require.NoError(t, err)
	require.Equal(t, int64(5), asset.ID)
}

func TestUploadURLTrimsTemplate(t *testing.T) {
	url := UploadURL("https://uploads.example.com/releases/17/assets{?name,label}", "femtobot-darwin-aarch64")
	require.Equal(t, "https://uploads.example.com/releases/17/assets?name=femtobot-darwin-aarch64", url)
}

func TestUploadURLEscapesAssetName(t *testing.T) {
	url := UploadURL("https://uploads.example.com/releases/17/assets{?name,label}", "odd name+suffix")
	require.Equal(t, "https://uploads.example.com/releases/17/assets?name=odd+name%2Bsuffix", url)
}
