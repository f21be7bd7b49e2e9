package thumbnail

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/slide"
)

// TransferControls is the download/progress overlay. It is created on first
// use and lives as long as its View.
type TransferControls struct {
	slide      *slide.Slide
	visible    bool
	spinning   bool
	focusable  bool
	clickable  bool
	onDownload func()
	spin       spinner.Spinner
	frame      int
}

func newTransferControls() *TransferControls {
	return &TransferControls{spin: spinner.MiniDot, focusable: true, clickable: true}
}

// SetSlide binds the overlay to s: a download button for pending or failed
// transfers, a spinner while in progress, hidden once done.
func (c *TransferControls) SetSlide(s *slide.Slide) {
	c.slide = s
	switch s.TransferState() {
	case attachment.TransferDone:
		c.visible, c.spinning = false, false
	case attachment.TransferInProgress:
		c.visible, c.spinning = true, true
	default:
		c.visible, c.spinning = true, false
	}
}

func (c *TransferControls) SetDownloadClickListener(fn func()) { c.onDownload = fn }

func (c *TransferControls) SetVisible(visible bool) { c.visible = visible }

func (c *TransferControls) Visible() bool { return c.visible }

func (c *TransferControls) Spinning() bool { return c.spinning }

func (c *TransferControls) SetFocusable(b bool) { c.focusable = b }

func (c *TransferControls) Focusable() bool { return c.focusable }

func (c *TransferControls) SetClickable(b bool) { c.clickable = b }

func (c *TransferControls) Clickable() bool { return c.clickable }

func (c *TransferControls) Slide() *slide.Slide { return c.slide }

// Clear unbinds the overlay and hides it.
func (c *TransferControls) Clear() {
	c.slide = nil
	c.visible = false
	c.spinning = false
	c.frame = 0
}

// ShowProgressSpinner swaps the download button for a spinner.
func (c *TransferControls) ShowProgressSpinner() {
	c.visible = true
	c.spinning = true
}

// Advance steps the spinner animation.
func (c *TransferControls) Advance() {
	if c.spinning {
		c.frame = (c.frame + 1) % len(c.spin.Frames)
	}
}

// Frame returns the spinner glyph to draw.
func (c *TransferControls) Frame() string {
	return c.spin.Frames[c.frame%len(c.spin.Frames)]
}

// Click presses the download button. It does nothing while hidden, spinning
// or not clickable.
func (c *TransferControls) Click() {
	if !c.visible || c.spinning || !c.clickable || c.onDownload == nil {
		return
	}
	c.onDownload()
}

// RemoveButton is the overlay control that removes the attachment.
type RemoveButton struct {
	Size        int
	TopMargin   int
	RightMargin int
	onClick     func(v *View)
}
