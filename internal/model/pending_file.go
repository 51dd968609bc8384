package model

// PendingFile is a locally selected image awaiting the upload workflow.
type PendingFile struct {
	Name        string
	Path        string
	ContentType string
	Data        []byte
	Index       int
}

// Size returns the file size in bytes.
func (f PendingFile) Size() int {
	return len(f.Data)
}
