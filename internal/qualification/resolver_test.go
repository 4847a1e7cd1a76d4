package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTable(t *testing.T) {
	cases := []struct {
		name     string
		issues   int
		eligible int
		status   Status
		routing  Routing
	}{
		{"clean with eligible program", 0, 2, StatusQualified, RoutingDirectProcessing},
		{"one issue", 1, 1, StatusConditionallyQualified, RoutingProcessorReview},
		{"two issues", 2, 1, StatusMarginal, RoutingManualUnderwriting},
		{"three issues", 3, 1, StatusNotQualified, RoutingAdvisorImprovement},
		{"clean but no eligible programs", 0, 0, StatusNotQualified, RoutingAdvisorImprovement},
		{"one issue no eligible programs", 1, 0, StatusNotQualified, RoutingAdvisorImprovement},
		{"many issues", 10, 5, StatusNotQualified, RoutingAdvisorImprovement},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(tc.issues, tc.eligible)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.routing, res.Routing)
		})
	}
}

func TestEveryStatusHasRouting(t *testing.T) {
	for _, s := range []Status{StatusQualified, StatusConditionallyQualified, StatusMarginal, StatusNotQualified} {
		assert.NotEmpty(t, routingByStatus[s], string(s))
	}
}
