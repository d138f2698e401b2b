package verify_code

// VerifyCodeRequest HTTP request model
type VerifyCodeRequest struct {
	Method  string `json:"method"`
	Contact string `json:"contact"`
	Code    string `json:"code"`
}

// VerifyCodeResponse HTTP response model
type VerifyCodeResponse struct {
	Result string `json:"result"` // ok | mismatch | expired
}
