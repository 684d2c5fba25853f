package httptransport

type GatewayResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Active   bool   `json:"active"`
}

type ListGatewaysResponse struct {
	Gateways []GatewayResponse `json:"gateways"`
}

type CheckCardRequest struct {
	AccountID int64  `json:"account_id"`
	Card      string `json:"card"`
}

type CheckCardResponse struct {
	Emoji            string `json:"emoji"`
	Status           string `json:"status"`
	Msg              string `json:"msg"`
	RemainingCredits int64  `json:"remaining_credits"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
