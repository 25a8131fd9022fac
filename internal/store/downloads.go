// ABOUTME: Download log storage operations.
// ABOUTME: Handles inserting and querying workbook downloads served over HTTP.

package store

import "time"

// DownloadLog represents one request against the fixture server
type DownloadLog struct {
	ID         int64
	Timestamp  time.Time
	Scenario   string
	Method     string
	Path       string
	StatusCode int
	DurationMs int
	Bytes      int
	IPAddress  string
	UserAgent  string
}

// DownloadStats represents aggregate download statistics
type DownloadStats struct {
	TotalDownloads int
	ErrorDownloads int
	PerScenario    map[string]int
}

// LogDownload inserts a download log entry
func (s *Store) LogDownload(log *DownloadLog) error {
	_, err := s.db.Exec(`
		INSERT INTO download_logs (scenario, method, path, status_code, duration_ms, bytes, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, log.Scenario, log.Method, log.Path, log.StatusCode, log.DurationMs, log.Bytes, log.IPAddress, log.UserAgent)
	return err
}

// GetRecentDownloads returns the most recent downloads, newest first
func (s *Store) GetRecentDownloads(limit int) ([]*DownloadLog, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, COALESCE(scenario, ''), method, path, status_code, duration_ms, bytes,
		       COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM download_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*DownloadLog
	for rows.Next() {
		log := &DownloadLog{}
		if err := rows.Scan(&log.ID, &log.Timestamp, &log.Scenario, &log.Method, &log.Path, &log.StatusCode,
			&log.DurationMs, &log.Bytes, &log.IPAddress, &log.UserAgent); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// GetDownloadStats returns aggregate download statistics
func (s *Store) GetDownloadStats() (*DownloadStats, error) {
	stats := &DownloadStats{PerScenario: make(map[string]int)}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM download_logs").Scan(&stats.TotalDownloads); err != nil {
		return nil, err
	}

	// Error responses (4xx, 5xx)
	if err := s.db.QueryRow("SELECT COUNT(*) FROM download_logs WHERE status_code >= 400").Scan(&stats.ErrorDownloads); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT scenario, COUNT(*)
		FROM download_logs
		WHERE scenario != '' AND status_code < 400
		GROUP BY scenario
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var scenario string
		var count int
		if err := rows.Scan(&scenario, &count); err != nil {
			return nil, err
		}
		stats.PerScenario[scenario] = count
	}
	return stats, rows.Err()
}
