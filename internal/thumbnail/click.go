package thumbnail

import "github.com/five82/thumbview/internal/attachment"

// Click is the primary tap. It opens the thumbnail when a fully transferred
// slide with local data is shown, and otherwise falls through to the
// handler registered with SetOnClick.
func (v *View) Click() {
	s := v.slide
	if v.thumbnailClick != nil &&
		s != nil &&
		s.DataLocator() != "" &&
		s.TransferState() == attachment.TransferDone {
		v.thumbnailClick(v, s)
		return
	}
	if v.onClick != nil {
		v.onClick(v)
	}
}

// DownloadClick taps the overlay's download button. It is only reachable
// while the overlay is shown.
func (v *View) DownloadClick() {
	if v.controls == nil {
		return
	}
	v.controls.Click()
}

// RemoveClick taps the remove button, if one was installed.
func (v *View) RemoveClick() {
	if v.removeButton == nil || v.removeButton.onClick == nil {
		return
	}
	v.removeButton.onClick(v)
}

func (v *View) dispatchDownloadClick() {
	if v.downloadClick != nil && v.slide != nil {
		v.downloadClick(v, v.slide)
	}
}
