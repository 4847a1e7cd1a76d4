// Package qualification folds critical issue counts and program eligibility
// into an overall qualification status and its routing recommendation.
package qualification

// Status is the overall qualification outcome
type Status string

const (
	StatusQualified              Status = "QUALIFIED"
	StatusConditionallyQualified Status = "CONDITIONALLY_QUALIFIED"
	StatusMarginal               Status = "MARGINAL"
	StatusNotQualified           Status = "NOT_QUALIFIED"
)

// Routing names the downstream path for a qualification status
type Routing string

const (
	RoutingDirectProcessing   Routing = "direct_processing"
	RoutingProcessorReview    Routing = "processor_review"
	RoutingManualUnderwriting Routing = "manual_underwriting"
	RoutingAdvisorImprovement Routing = "advisor_improvement_plan"
)

// routingByStatus is the fixed 1:1 status to routing map
var routingByStatus = map[Status]Routing{
	StatusQualified:              RoutingDirectProcessing,
	StatusConditionallyQualified: RoutingProcessorReview,
	StatusMarginal:               RoutingManualUnderwriting,
	StatusNotQualified:           RoutingAdvisorImprovement,
}

// Resolution pairs the overall status with its routing.
type Resolution struct {
	Status  Status  `json:"overall_status"`
	Routing Routing `json:"routing_recommendation"`
}

// Resolve applies the status table in order. Any outcome other than
// QUALIFIED needs at least one eligible program to avoid NOT_QUALIFIED.
func Resolve(criticalIssues, eligiblePrograms int) Resolution {
	var status Status
	switch {
	case criticalIssues == 0 && eligiblePrograms >= 1:
		status = StatusQualified
	case criticalIssues <= 1 && eligiblePrograms >= 1:
		status = StatusConditionallyQualified
	case criticalIssues <= 2 && eligiblePrograms >= 1:
		status = StatusMarginal
	default:
		status = StatusNotQualified
	}
	return Resolution{Status: status, Routing: routingByStatus[status]}
}
