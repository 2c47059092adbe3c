package omise

// Omise API wire types, trimmed to the fields the storefront uses.

type chargeResponse struct {
	Object         string          `json:"object"`
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Paid           bool            `json:"paid"`
	Amount         int64           `json:"amount"`
	Currency       string          `json:"currency"`
	AuthorizeURI   string          `json:"authorize_uri"`
	FailureCode    string          `json:"failure_code"`
	FailureMessage string          `json:"failure_message"`
	Source         *sourceResponse `json:"source"`
}

type sourceResponse struct {
	Object        string `json:"object"`
	ID            string `json:"id"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	ScannableCode *struct {
		Image *struct {
			DownloadURI string `json:"download_uri"`
		} `json:"image"`
	} `json:"scannable_code"`
}

type errorResponse struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *sourceResponse) qrImageURI() string {
	if s == nil || s.ScannableCode == nil || s.ScannableCode.Image == nil {
		return ""
	}
	return s.ScannableCode.Image.DownloadURI
}
