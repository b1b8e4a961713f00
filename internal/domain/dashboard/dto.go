package dashboard

// LeadDashboardResponse backs the lead's quick-stats header.
type LeadDashboardResponse struct {
	PendingRequests      int64 `json:"pending_requests"`
	CancellationRequests int64 `json:"cancellation_requests"`
	ActiveTasks          int64 `json:"active_tasks"`
	AnalystsOnline       int   `json:"analysts_online"`
	TotalAnalysts        int   `json:"total_analysts"`
}

// AnalystDashboardResponse backs the analyst's own overview.
type AnalystDashboardResponse struct {
	OpenRequests  int64         `json:"open_requests"`
	OpenTasks     int64         `json:"open_tasks"`
	TodaySchedule *TodaySummary `json:"today_schedule,omitempty"`
}

// TodaySummary describes the analyst's shift for the current day; nil when
// today is not a scheduled work day.
type TodaySummary struct {
	Mode      string `json:"mode"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
