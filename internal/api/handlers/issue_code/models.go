package issue_code

// IssueCodeRequest HTTP request model
type IssueCodeRequest struct {
	Method  string `json:"method"`            // sms | email | telegram
	Contact string `json:"contact,omitempty"` // не нужен, если контакт уже в черновике
}

// IssueCodeResponse HTTP response model
type IssueCodeResponse struct {
	Status string `json:"status"`
}
