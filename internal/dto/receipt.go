package dto

// UploadURLResponse is returned from the upload-URL endpoint: the signed URL
// the client PUTs the image bytes to, and the object reference it must echo
// back when finalizing the upload.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageRef  string `json:"imageRef"`
}

// UploadReceiptRequest finalizes an upload. ImageRef is the object reference
// from UploadURLResponse; price, store, categories and label are supplied by
// the caller (transcript parsing is not part of this service).
type UploadReceiptRequest struct {
	ImageRef   string   `json:"imageRef"`
	Price      float64  `json:"price"`
	Store      string   `json:"store"`
	Categories []string `json:"categories"`
	Label      string   `json:"label"`
}
