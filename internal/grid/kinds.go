package grid

import (
	"slices"
	"strings"
)

// Widget kind tags.
const (
	KindQuickNotes          = "quicknotes"
	KindCalendar            = "calendar"
	KindJORequestorChart    = "jo-requestor-chart"
	KindJOApproverChart     = "jo-approver-chart"
	KindJOMaintenanceTrends = "jo-maintenance-trends"
	KindJOUpcomingDeadlines = "jo-upcoming-deadlines"
	KindJOAnalytics         = "jo-analytics"
	KindMaintenanceWorkload = "maintenance-workload"
	KindManhoursChart       = "manhours-chart"
	KindMachinePerformance  = "machine-performance"
	KindMonitoringChart     = "monitoring-chart"
	KindDCFRequestorChart   = "dcf-requestor-chart"
	KindDCFApproverChart    = "dcf-approver-chart"
)

// Portal roles that gate which widgets are offered.
const (
	RoleJobOrderRequestor = "job_order_requestor"
	RoleJobOrderApprover  = "job_order_approver"
	RoleManhoursStaff     = "manhours_staff"
	RoleMonitoringStaff   = "monitoring_staff"
	RoleDCFRequestor      = "dcf_requestor"
	RoleDCFApprover       = "dcf_approver"
)

// Kind describes one widget type: presentation, default size and the roles
// it is offered to. An empty Roles list means everyone.
type Kind struct {
	Tag        string   `json:"type"`
	Title      string   `json:"title"`
	Icon       string   `json:"icon"`
	W          int      `json:"w"`
	H          int      `json:"h"`
	Roles      []string `json:"roles,omitempty"`
	DataSource string   `json:"dataSource,omitempty"`
}

// OfferedTo reports whether a user holding roles may add this kind.
func (k Kind) OfferedTo(roles RoleSet) bool {
	if len(k.Roles) == 0 {
		return true
	}
	return slices.ContainsFunc(k.Roles, roles.Has)
}

var kinds = []Kind{
	{Tag: KindQuickNotes, Title: "Quick Notes", Icon: "fas fa-sticky-note", W: 1, H: 1},
	{Tag: KindCalendar, Title: "Calendar", Icon: "fas fa-calendar-alt", W: 1, H: 1},
	{Tag: KindJORequestorChart, Title: "Job Order Trends", Icon: "fas fa-chart-bar", W: 1, H: 1,
		Roles: []string{RoleJobOrderRequestor}, DataSource: "/joborder/chart-data/6month/"},
	{Tag: KindJOApproverChart, Title: "Approval Analytics", Icon: "fas fa-chart-line", W: 1, H: 1,
		Roles: []string{RoleJobOrderApprover}, DataSource: "/joborder/job-order-chart-data/6month/"},
	{Tag: KindJOMaintenanceTrends, Title: "Job Order Trends", Icon: "fas fa-chart-area", W: 1, H: 1,
		Roles: []string{RoleJobOrderApprover}, DataSource: "/joborder/api/get_job_order_trends/"},
	{Tag: KindJOUpcomingDeadlines, Title: "Upcoming Deadlines", Icon: "fas fa-hourglass-half", W: 1, H: 1,
		Roles: []string{RoleJobOrderRequestor, RoleJobOrderApprover}},
	{Tag: KindJOAnalytics, Title: "Job Order Analytics", Icon: "fas fa-chart-pie", W: 1, H: 1,
		Roles: []string{RoleJobOrderApprover}, DataSource: "/joborder/analytics/"},
	{Tag: KindMaintenanceWorkload, Title: "Maintenance Workload", Icon: "fas fa-tasks", W: 1, H: 1,
		Roles: []string{RoleJobOrderApprover}, DataSource: "/joborder/workload/"},
	{Tag: KindManhoursChart, Title: "Manhours Data", Icon: "fas fa-clock", W: 1, H: 1,
		Roles: []string{RoleManhoursStaff}, DataSource: "/manhours/chart-data/"},
	{Tag: KindMachinePerformance, Title: "Machine Performance", Icon: "fas fa-cogs", W: 1, H: 1,
		Roles: []string{RoleManhoursStaff}, DataSource: "/manhours/machine-performance/"},
	{Tag: KindMonitoringChart, Title: "Monitoring Dashboard", Icon: "fas fa-chart-line", W: 1, H: 1,
		Roles: []string{RoleMonitoringStaff}, DataSource: "/monitoring/chart-data/month/"},
	{Tag: KindDCFRequestorChart, Title: "DCF Request Status", Icon: "fas fa-file-alt", W: 2, H: 1,
		Roles: []string{RoleDCFRequestor}, DataSource: "/dcf/api/requestor-chart-data/6month/"},
	{Tag: KindDCFApproverChart, Title: "DCF Approval Analytics", Icon: "fas fa-clipboard-check", W: 2, H: 1,
		Roles: []string{RoleDCFApprover}, DataSource: "/dcf/api/approver-chart-data/6month/"},
}

// extra spellings seen in stored layouts
var aliases = map[string]string{
	"dcfrequestor":  KindDCFRequestorChart,
	"dcf-requestor": KindDCFRequestorChart,
	"dcfapprover":   KindDCFApproverChart,
	"dcf-approver":  KindDCFApproverChart,
}

var kindIndex = buildKindIndex()

func buildKindIndex() map[string]Kind {
	idx := make(map[string]Kind, len(kinds)*2+len(aliases))
	for _, k := range kinds {
		idx[k.Tag] = k
		idx[strings.ReplaceAll(k.Tag, "-", "")] = k
	}
	for alias, tag := range aliases {
		idx[alias] = idx[tag]
	}
	return idx
}

// Kinds returns the catalog of widget kinds in display order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// LookupKind resolves a tag or one of its aliases, case-insensitively.
func LookupKind(tag string) (Kind, bool) {
	k, ok := kindIndex[strings.ToLower(strings.TrimSpace(tag))]
	return k, ok
}

// Canonical returns the canonical tag for tag, or tag unchanged when it is
// not a known kind.
func Canonical(tag string) string {
	if k, ok := LookupKind(tag); ok {
		return k.Tag
	}
	return tag
}
