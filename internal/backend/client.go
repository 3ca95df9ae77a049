package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/zorkosss/GameHub/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "GameHub/2.1"
)

// Client implements domain.LibraryClient against the Game Hub REST API.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new backend API client. clientID is sent on every
// request so the backend can distinguish subscribers.
func NewClient(baseURL, clientID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string { return c.baseURL }

// doRequest performs a JSON request against the backend.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GameHub-Client", c.clientID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "error", err, "path", path)
		return nil, domain.ErrBackendOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrEntryNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("backend request error", "status", resp.StatusCode, "path", path)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return respBody, nil
}

// checkStatus parses the generic action response and fails on
// non-success payloads.
func (c *Client) checkStatus(body []byte) error {
	var status statusDTO
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !status.ok() {
		if status.Message != "" {
			return fmt.Errorf("backend rejected request: %s", status.Message)
		}
		return fmt.Errorf("backend rejected request")
	}
	return nil
}

// FetchAllGames returns a full library snapshot.
func (c *Client) FetchAllGames(ctx context.Context) ([]domain.GameEntry, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/games", nil)
	if err != nil {
		return nil, err
	}

	var dtos []gameDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		c.logger.Error("failed to parse games response", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapGames(dtos), nil
}

// TriggerScan asks the backend to rescan the library. Fire-and-forget:
// completion is signaled later by a scan-finished push event.
func (c *Client) TriggerScan(ctx context.Context) error {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/refresh", nil)
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// UpdateGameFields persists a partial update for one entry.
func (c *Client) UpdateGameFields(ctx context.Context, key domain.Key, patch domain.FieldPatch) error {
	req := updateGameRequest{
		Name:       key.Name,
		Source:     string(key.Source),
		UpdateData: patchToUpdateData(patch),
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/update_game", req)
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// LaunchGame asks the backend to launch the given command.
func (c *Client) LaunchGame(ctx context.Context, command string, key domain.Key, installPath string) error {
	req := launchRequest{
		Command:     command,
		Source:      string(key.Source),
		Name:        key.Name,
		InstallPath: installPath,
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/launch", req)
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// AddGame registers a manual game by executable path.
func (c *Client) AddGame(ctx context.Context, name, path string) error {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/add_game", addGameRequest{Name: name, Path: path})
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// OpenFolder asks the backend host to reveal the path in its file
// manager.
func (c *Client) OpenFolder(ctx context.Context, path string) error {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/open_folder", openFolderRequest{Path: path})
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// RemoveManualGame unregisters a manually added game.
func (c *Client) RemoveManualGame(ctx context.Context, name string) error {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/remove_manual_game", removeGameRequest{Name: name})
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// GetSettings fetches the backend scan settings.
func (c *Client) GetSettings(ctx context.Context) (domain.Settings, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/settings", nil)
	if err != nil {
		return domain.Settings{}, err
	}

	var dto settingsDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return domain.Settings{
		SteamGridDBAPIKey: dto.SteamGridDBAPIKey,
		ScanPaths:         dto.ScanPaths,
	}, nil
}

// SaveSettings persists the backend scan settings.
func (c *Client) SaveSettings(ctx context.Context, settings domain.Settings) error {
	dto := settingsDTO{
		SteamGridDBAPIKey: settings.SteamGridDBAPIKey,
		ScanPaths:         settings.ScanPaths,
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/settings", dto)
	if err != nil {
		return err
	}
	return c.checkStatus(body)
}

// CheckForUpdates asks the backend whether a newer release exists.
func (c *Client) CheckForUpdates(ctx context.Context) (domain.UpdateInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/check_for_updates", nil)
	if err != nil {
		return domain.UpdateInfo{}, err
	}

	var dto updateCheckDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.UpdateInfo{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return domain.UpdateInfo{
		Available: dto.UpdateAvailable,
		Version:   dto.Version,
		URL:       dto.URL,
		Notes:     dto.Notes,
	}, nil
}

// SystemStats samples the backend host's current load figures.
func (c *Client) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/system_stats", nil)
	if err != nil {
		return domain.SystemStats{}, err
	}

	var dto systemStatsDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.SystemStats{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return domain.SystemStats{CPU: dto.CPU, RAM: dto.RAM, Ping: dto.Ping}, nil
}
