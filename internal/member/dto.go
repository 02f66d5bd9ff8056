package member

type GetProfileResponse struct {
	ID               uint32  `json:"id"`
	Name             string  `json:"name"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	BirthDate        string  `json:"birthDate"`
	EmailVerified    bool    `json:"emailVerified"`
	OnTimeReturns    uint32  `json:"onTimeReturns"`
	ReliabilityScore float64 `json:"reliabilityScore"`
	OpenLoans        int64   `json:"openLoans"`
	Subscriptions    int64   `json:"subscriptions"`
}

type IssuePasscodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyPasscodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}
