package models

type UploadCVResponse struct {
	Filename      string `json:"filename"`
	ContentType   string `json:"content_type"`
	Size          int    `json:"size"`
	ExtractedText string `json:"extracted_text"`
}

type GenerateQuestionsRequest struct {
	CVText string `json:"cv_text"`
}

type GenerateQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type StartInterviewResponse struct {
	SessionID string `json:"session_id"`
}

type FinishInterviewRequest struct {
	SessionID string `json:"session_id"`
}

type FinishInterviewResponse struct {
	OK bool `json:"ok"`
}

type ListInterviewsResponse struct {
	Items []SessionSummary `json:"items"`
}

// TranscribeAnswerResponse carries a nil AudioURL when the answer was not
// persisted under a session.
type TranscribeAnswerResponse struct {
	Transcript string  `json:"transcript"`
	AudioURL   *string `json:"audio_url"`
}
