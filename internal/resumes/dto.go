package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID   string    `json:"resumeId"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:   r.ID,
		FileName:   r.FileName,
		FileType:   r.FileType,
		MimeType:   r.MimeType,
		SizeBytes:  r.SizeBytes,
		UploadedAt: r.CreatedAt,
	}
}
