package dashboard

// StatusCount is one slice of the checklist population by lifecycle state.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// SectorCount is one slice of the checklist population by sector.
type SectorCount struct {
	SectorID   int64  `json:"sector_id"`
	SectorName string `json:"sector_name"`
	Count      int64  `json:"count"`
}

type Summary struct {
	Total        int64         `json:"total"`
	ByStatus     []StatusCount `json:"by_status"`
	BySector     []SectorCount `json:"by_sector"`
	PendingCount int64         `json:"pending_count"`
	AlertCount   int64         `json:"alert_count"`
}

type RepositoryAPI interface {
	CountByStatus() ([]StatusCount, error)
	CountBySector() ([]SectorCount, error)
	CountPending() (int64, error)
	CountAlerts() (int64, error)
}
