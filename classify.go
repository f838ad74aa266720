package aiklyra

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// errorBody is the shape of the service's JSON error responses. Detail is
// kept raw because 422 responses carry a structured list rather than a
// string.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// analysisBody mirrors AnalysisResponse with a pointer matrix so an absent
// field is distinguishable from an empty one. An absent intent_by_cluster
// decodes to a nil map.
type analysisBody struct {
	TransitionMatrix *[][]float64   `json:"transition_matrix"`
	IntentByCluster  map[int]string `json:"intent_by_cluster"`
}

// classifyResponse turns a raw status code and body into a typed response or
// a typed error. It is a pure function of its inputs: no retries, no logging.
//
// The 403 branch matches known detail phrasings by case-insensitive
// substring. This mirrors the service's free-text error contract and is
// deliberately loose; a wording change on the server falls through to the
// generic APIError rather than being misclassified.
func classifyResponse(statusCode int, body []byte) (*AnalysisResponse, error) {
	switch statusCode {
	case http.StatusOK:
		var parsed analysisBody
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, &AnalysisError{Message: fmt.Sprintf("malformed analysis response: %v", err)}
		}
		var missing []string
		if parsed.TransitionMatrix == nil {
			missing = append(missing, "transition_matrix")
		}
		if parsed.IntentByCluster == nil {
			missing = append(missing, "intent_by_cluster")
		}
		if len(missing) > 0 {
			return nil, &AnalysisError{
				Message: fmt.Sprintf("malformed analysis response: missing field(s) %s", strings.Join(missing, ", ")),
			}
		}
		return &AnalysisResponse{
			TransitionMatrix: *parsed.TransitionMatrix,
			IntentByCluster:  parsed.IntentByCluster,
		}, nil

	case http.StatusForbidden:
		detail := forbiddenDetail(body)
		lower := strings.ToLower(detail)
		switch {
		case strings.Contains(lower, "invalid") && strings.Contains(lower, "api key"):
			return nil, &InvalidAPIKeyError{Detail: detail}
		case strings.Contains(lower, "insufficient") && strings.Contains(lower, "credits"):
			return nil, &InsufficientCreditsError{Detail: detail}
		default:
			return nil, &APIError{StatusCode: statusCode, Body: string(body)}
		}

	default:
		return nil, &APIError{StatusCode: statusCode, Body: string(body)}
	}
}

// forbiddenDetail extracts the detail text from a 403 body. Non-JSON bodies
// and non-string details are matched as-is.
func forbiddenDetail(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Detail == nil {
		return string(body)
	}
	var s string
	if err := json.Unmarshal(parsed.Detail, &s); err != nil {
		return string(parsed.Detail)
	}
	return s
}
