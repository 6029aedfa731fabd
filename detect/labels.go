package detect

// MIME labels produced by the detectors.
const (
	LabelText       = "text/plain"
	LabelCSV        = "text/csv"
	LabelHTML       = "text/html"
	LabelCSS        = "text/css"
	LabelJSON       = "application/json"
	LabelXML        = "application/xml"
	LabelJavaScript = "application/javascript"
	LabelPNG        = "image/png"
	LabelJPEG       = "image/jpeg"
	LabelGIF        = "image/gif"
	LabelZIP        = "application/zip"
	LabelGzip       = "application/x-gzip"
	LabelBzip2      = "application/x-bzip2"
	LabelBinary     = "application/octet-stream"
)
