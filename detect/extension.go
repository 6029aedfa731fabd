package detect

import (
	"path/filepath"
	"strings"
)

var extensionLabels = map[string]string{
	"txt":  LabelText,
	"csv":  LabelCSV,
	"json": LabelJSON,
	"xml":  LabelXML,
	"html": LabelHTML,
	"css":  LabelCSS,
	"js":   LabelJavaScript,
	"png":  LabelPNG,
	"jpg":  LabelJPEG,
	"jpeg": LabelJPEG,
	"gif":  LabelGIF,
	"zip":  LabelZIP,
	"gz":   LabelGzip,
	"bz2":  LabelBzip2,
}

// DetectByExtension maps the extension of name to a label, ignoring case.
// Names without a known extension map to LabelBinary.
func DetectByExtension(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if label, ok := extensionLabels[ext]; ok {
		return label
	}

	return LabelBinary
}
