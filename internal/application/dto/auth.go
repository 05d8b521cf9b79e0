package dto

// LoginCallbackRequest is the query LINE appends when redirecting back after authorization.
type LoginCallbackRequest struct {
	Action string `query:"action"`
	Code   string `query:"code"`
	State  string `query:"state"`
}
