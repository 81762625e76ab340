package assistant

import "context"

// Attachment is a file the user sent alongside a chat message, typically a
// receipt photo or PDF.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// ReceiptExtractor pulls structured transaction fields out of an attachment
// so the dispatcher can fold them into the model prompt.
type ReceiptExtractor interface {
	Extract(ctx context.Context, attachment Attachment) (string, error)
}

// geminiExtractor asks the completion model to describe the receipt as text.
type geminiExtractor struct {
	completer Completer
}

// NewReceiptExtractor returns an extractor backed by the given completer.
func NewReceiptExtractor(completer Completer) ReceiptExtractor {
	return &geminiExtractor{completer: completer}
}

const extractorPrompt = `Extract the merchant name, total amount, and date from this receipt. Reply with one short sentence, for example: "Receipt from Walmart for $45.20 dated 2025-03-01."`

func (e *geminiExtractor) Extract(ctx context.Context, attachment Attachment) (string, error) {
	return e.completer.Complete(ctx, extractorPrompt, "Receipt file: "+attachment.Filename)
}
