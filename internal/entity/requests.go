package entity

// Upload is one file taken from a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

type PrepareResponse struct {
	Token         string   `json:"token"`
	Columns       []string `json:"columns"`
	DefaultColumn string   `json:"default_column"`
	Filename      string   `json:"filename"`
}

type ProcessRequest struct {
	Token            string `json:"token"`
	Column           string `json:"column"`
	Quality          int    `json:"quality"`
	KeepPNG          bool   `json:"keep_png"`
	EnhanceFilenames bool   `json:"enhance_filenames"`
}

type BatchResponse struct {
	Message     string   `json:"message"`
	MessageType string   `json:"message_type,omitempty"`
	Processed   []string `json:"processed"`
	Skipped     []string `json:"skipped"`
	Note        string   `json:"note,omitempty"`
	FolderKey   string   `json:"folder_key,omitempty"`
}

type LegacyUploadResponse struct {
	Message        string `json:"message"`
	DownloadFolder string `json:"download_folder"`
	ImageCount     int    `json:"image_count"`
}
