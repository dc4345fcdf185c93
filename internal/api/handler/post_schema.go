package handler

// errorItem is a single entry in the error envelope.
type errorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// errorResponse is the standard envelope returned on all 4xx responses.
type errorResponse struct {
	Errors []errorItem `json:"errors"`
}

// messageResponse carries a bare confirmation message.
type messageResponse struct {
	Msg string `json:"msg"`
}

type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}
