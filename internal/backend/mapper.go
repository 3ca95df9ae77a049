package backend

import "github.com/zorkosss/GameHub/internal/domain"

// mapGame converts a wire entry to the domain model.
func mapGame(dto gameDTO) domain.GameEntry {
	return domain.GameEntry{
		Name:            domain.NormalizeName(dto.Name),
		Source:          domain.Source(dto.Source),
		LaunchID:        string(dto.LaunchID),
		InstallPath:     dto.InstallPath,
		Favorite:        dto.Favorite,
		Hidden:          dto.Hidden,
		LastPlayed:      int64(dto.LastPlayed),
		PlaytimeSeconds: dto.PlaytimeSeconds,
		GridImageURL:    dto.GridImageURL,
		AvgFPS:          dto.AvgFPS,
		BestPing:        dto.BestPing,
	}
}

// mapGames converts a full snapshot response.
func mapGames(dtos []gameDTO) []domain.GameEntry {
	entries := make([]domain.GameEntry, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, mapGame(dto))
	}
	return entries
}

// patchToUpdateData flattens a FieldPatch into the backend's
// update_data map: only set fields appear.
func patchToUpdateData(patch domain.FieldPatch) map[string]interface{} {
	data := make(map[string]interface{})
	if patch.Favorite != nil {
		data["favorite"] = *patch.Favorite
	}
	if patch.Hidden != nil {
		data["hidden"] = *patch.Hidden
	}
	if patch.LaunchID != nil {
		data["launch_id"] = *patch.LaunchID
	}
	if patch.InstallPath != nil {
		data["install_path"] = *patch.InstallPath
	}
	if patch.LastPlayed != nil {
		data["last_played"] = *patch.LastPlayed
	}
	if patch.PlaytimeSeconds != nil {
		data["playtime_seconds"] = *patch.PlaytimeSeconds
	}
	if patch.GridImageURL != nil {
		data["grid_image_url"] = *patch.GridImageURL
	}
	if patch.AvgFPS != nil {
		data["avg_fps"] = *patch.AvgFPS
	}
	if patch.BestPing != nil {
		data["best_ping"] = *patch.BestPing
	}
	return data
}
