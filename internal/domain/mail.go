package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ApplicantStatusMailData struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	InterviewDate string `json:"interviewDate"`
	MeetingLink   string `json:"meetingLink"`
}

type EnrollmentMailData struct {
	StudentName string `json:"studentName"`
	GroupName   string `json:"groupName"`
	FirstDay    string `json:"firstDay"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
