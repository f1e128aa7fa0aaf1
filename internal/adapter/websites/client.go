package websites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/semmidev/azwebapp/internal/domain"
)

const (
	DefaultEndpoint   = "https://management.azure.com"
	DefaultAPIVersion = "2016-08-01"
)

// Client talks to the Microsoft.Web resource provider of Azure Resource Manager.
type Client struct {
	httpClient     *http.Client
	endpoint       string
	subscriptionID string
	apiVersion     string
}

type Options struct {
	Endpoint       string
	SubscriptionID string
	APIVersion     string
}

// NewClient wraps an already authenticated HTTP client.
func NewClient(httpClient *http.Client, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}

	return &Client{
		httpClient:     httpClient,
		endpoint:       strings.TrimRight(opts.Endpoint, "/"),
		subscriptionID: opts.SubscriptionID,
		apiVersion:     opts.APIVersion,
	}
}

// BackupSite starts a backup of the site, or of one of its slots when slot is
// not empty. Non-2xx answers are returned as *ResponseError.
func (c *Client) BackupSite(ctx context.Context, resourceGroup, name, slot string, req *domain.BackupRequest) (*domain.BackupItem, error) {
	body, err := json.Marshal(newBackupRequestEnvelope(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backupURL(resourceGroup, name, slot), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build backup request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newResponseError(resp, payload)
	}

	var envelope backupItemEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode backup item: %w", err)
	}

	return envelope.toDomain(), nil
}

func (c *Client) backupURL(resourceGroup, name, slot string) string {
	path := fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Web/sites/%s",
		url.PathEscape(c.subscriptionID), url.PathEscape(resourceGroup), url.PathEscape(name))
	if slot != "" {
		path += "/slots/" + url.PathEscape(slot)
	}

	return c.endpoint + path + "/backup?api-version=" + url.QueryEscape(c.apiVersion)
}

type backupRequestEnvelope struct {
	// Location has no omitempty: the service rejects a request without it.
	Location   string                  `json:"location"`
	Properties backupRequestProperties `json:"properties"`
}

type backupRequestProperties struct {
	BackupRequestName *string                        `json:"name,omitempty"`
	StorageAccountURL string                         `json:"storageAccountUrl"`
	Databases         []domain.DatabaseBackupSetting `json:"databases,omitempty"`
}

func newBackupRequestEnvelope(req *domain.BackupRequest) backupRequestEnvelope {
	return backupRequestEnvelope{
		Location: req.Location,
		Properties: backupRequestProperties{
			BackupRequestName: req.BackupRequestName,
			StorageAccountURL: req.StorageAccountURL,
			Databases:         req.Databases,
		},
	}
}

type backupItemEnvelope struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Type       string               `json:"type"`
	Location   string               `json:"location"`
	Properties backupItemProperties `json:"properties"`
}

type backupItemProperties struct {
	BackupID             int                            `json:"id"`
	StorageAccountURL    string                         `json:"storageAccountUrl"`
	BlobName             string                         `json:"blobName"`
	Name                 string                         `json:"name"`
	Status               domain.BackupStatus            `json:"status"`
	SizeInBytes          int64                          `json:"sizeInBytes"`
	Created              *time.Time                     `json:"created"`
	Log                  string                         `json:"log"`
	Databases            []domain.DatabaseBackupSetting `json:"databases"`
	Scheduled            bool                           `json:"scheduled"`
	LastRestoreTimeStamp *time.Time                     `json:"lastRestoreTimeStamp"`
	FinishedTimeStamp    *time.Time                     `json:"finishedTimeStamp"`
	CorrelationID        string                         `json:"correlationId"`
	WebsiteSizeInBytes   int64                          `json:"websiteSizeInBytes"`
}

func (e backupItemEnvelope) toDomain() *domain.BackupItem {
	p := e.Properties
	return &domain.BackupItem{
		ID:                   e.ID,
		Name:                 e.Name,
		Type:                 e.Type,
		Location:             e.Location,
		BackupID:             p.BackupID,
		StorageAccountURL:    p.StorageAccountURL,
		BlobName:             p.BlobName,
		BackupName:           p.Name,
		Status:               p.Status,
		SizeInBytes:          p.SizeInBytes,
		Created:              p.Created,
		Log:                  p.Log,
		Databases:            p.Databases,
		Scheduled:            p.Scheduled,
		LastRestoreTimeStamp: p.LastRestoreTimeStamp,
		FinishedTimeStamp:    p.FinishedTimeStamp,
		CorrelationID:        p.CorrelationID,
		WebsiteSizeInBytes:   p.WebsiteSizeInBytes,
	}
}
