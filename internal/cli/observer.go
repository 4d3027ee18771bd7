package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/ai-readme/ai-readme/internal/generate"
	"github.com/ai-readme/ai-readme/internal/section"
	"github.com/ai-readme/ai-readme/internal/ui"
)

// progressObserver shows a spinner while each section is generated and a
// status line when it finishes.
type progressObserver struct {
	progress *ui.Progress
	styles   *ui.Styles
	out      io.Writer
	current  ui.Spinner
}

func newProgressObserver(progress *ui.Progress, styles *ui.Styles, out io.Writer) *progressObserver {
	return &progressObserver{progress: progress, styles: styles, out: out}
}

func (o *progressObserver) SectionStarted(spec section.Spec, index, total int) {
	o.stop()
	o.current = o.progress.Spinner(fmt.Sprintf("[%d/%d] Generating %s", index+1, total, spec.Name))
}

func (o *progressObserver) Retrying(spec section.Spec, attempt int, delay time.Duration, err error) {
	if o.current != nil {
		o.current.SetTitle(fmt.Sprintf("Retrying %s in %s (attempt %d failed: %v)", spec.Name, delay, attempt, err))
	}
}

func (o *progressObserver) SectionFinished(res generate.SectionResult) {
	o.stop()
	switch res.Status {
	case generate.StatusGenerated:
		_, _ = fmt.Fprintln(o.out, o.styles.Success(res.Name))
	case generate.StatusSkippedByUser:
		_, _ = fmt.Fprintln(o.out, o.styles.Muted("- "+res.Name+" (skipped)"))
	case generate.StatusFailed:
		_, _ = fmt.Fprintln(o.out, o.styles.Error(fmt.Sprintf("%s: %v", res.Name, res.Err)))
	}
}

// stop halts the running spinner, if any. Interactive review calls it
// before drawing its own form.
func (o *progressObserver) stop() {
	if o.current != nil {
		o.current.Stop()
		o.current = nil
	}
}
