package pod

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/podsync-io/podsync/pkg/errors"
)

// APIClient talks to the pod provider's HTTP API.
type APIClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewAPIClient creates a client for the provider API at `endpoint`,
// authenticating with `apiKey`.
func NewAPIClient(endpoint, apiKey string) *APIClient {
	return &APIClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetPod implements Client.
func (client *APIClient) GetPod(id string) (Pod, error) {
	req, err := http.NewRequest("GET",
		fmt.Sprintf("%s/pods/%s", client.endpoint, id), nil)
	if err != nil {
		return Pod{}, errors.WithContext(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return Pod{}, errors.WithContext(err, "query provider API")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Pod{}, NotFoundError{PodID: id}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Pod{}, errors.NewFriendlyError(
			"The provider API rejected the API key.\n" +
				"Run `podsync config` to update it.")
	default:
		body, _ := ioutil.ReadAll(resp.Body)
		return Pod{}, fmt.Errorf("unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pod Pod
	if err := json.NewDecoder(resp.Body).Decode(&pod); err != nil {
		return Pod{}, errors.WithContext(err, "parse response")
	}
	return pod, nil
}
