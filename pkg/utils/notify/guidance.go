package notify

import (
	"fmt"
	"io"

	"github.com/mitchellh/go-wordwrap"
)

// GuidanceWidth is the column at which guidance text is wrapped.
const GuidanceWidth = 72

// Guidancef writes an informational message whose prose is wrapped at GuidanceWidth.
// Lines that are already shorter than the width, such as connection strings, are kept intact.
func Guidancef(writer io.Writer, format string, args ...any) {
	content := fmt.Sprintf(format, args...)

	WriteMessage(Message{
		Type:    InfoType,
		Content: wordwrap.WrapString(content, GuidanceWidth),
		Writer:  writer,
	})
}
