package backend

import (
	"bytes"
	"encoding/json"
)

// flexString tolerates the backend emitting launch IDs as either JSON
// strings or bare numbers (Steam app IDs are numeric in old databases).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// gameDTO mirrors one entry of the /api/games response.
type gameDTO struct {
	Name            string     `json:"name"`
	Source          string     `json:"source"`
	LaunchID        flexString `json:"launch_id"`
	InstallPath     string     `json:"install_path"`
	Favorite        bool       `json:"favorite"`
	Hidden          bool       `json:"hidden"`
	LastPlayed      float64    `json:"last_played"` // Unix seconds, fractional
	PlaytimeSeconds int64      `json:"playtime_seconds"`
	GridImageURL    string     `json:"grid_image_url"`
	AvgFPS          string     `json:"avg_fps"`
	BestPing        string     `json:"best_ping"`
}

// statusDTO is the backend's generic action response.
type statusDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (s statusDTO) ok() bool { return s.Status == "success" }

// updateGameRequest is the /api/update_game payload: identity key plus
// only the fields being changed.
type updateGameRequest struct {
	Name       string                 `json:"name"`
	Source     string                 `json:"source"`
	UpdateData map[string]interface{} `json:"update_data"`
}

// launchRequest is the /api/launch payload.
type launchRequest struct {
	Command     string `json:"command"`
	Source      string `json:"source"`
	Name        string `json:"name"`
	InstallPath string `json:"install_path,omitempty"`
}

// addGameRequest is the /api/add_game payload.
type addGameRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// removeGameRequest is the /api/remove_manual_game payload.
type removeGameRequest struct {
	Name string `json:"name"`
}

// openFolderRequest is the /api/open_folder payload.
type openFolderRequest struct {
	Path string `json:"path"`
}

// updateCheckDTO mirrors /api/check_for_updates.
type updateCheckDTO struct {
	UpdateAvailable bool   `json:"update_available"`
	Version         string `json:"version"`
	URL             string `json:"url"`
	Notes           string `json:"notes"`
}

// systemStatsDTO mirrors /api/system_stats.
type systemStatsDTO struct {
	CPU  float64 `json:"cpu"`
	RAM  float64 `json:"ram"`
	Ping string  `json:"ping"`
}

// settingsDTO mirrors /api/settings.
type settingsDTO struct {
	SteamGridDBAPIKey string   `json:"steamgriddb_api_key"`
	ScanPaths         []string `json:"scan_paths"`
}
