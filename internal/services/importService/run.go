package importservice

import (
	"context"
	"errors"
	"fmt"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	"go.uber.org/zap"
)

const maxResolveAttempts = 5

// Previewer shows an item and answers whether it should be imported
type Previewer interface {
	Preview(ctx context.Context, item Item, index, total int) (bool, error)
}

type PreviewerFunc func(ctx context.Context, item Item, index, total int) (bool, error)

func (f PreviewerFunc) Preview(ctx context.Context, item Item, index, total int) (bool, error) {
	return f(ctx, item, index, total)
}

// AcceptAll is a Previewer that imports everything
var AcceptAll Previewer = PreviewerFunc(func(context.Context, Item, int, int) (bool, error) { return true, nil })

// Run drives a batch to completion with blocking collaborators. A nil
// previewer accepts every item; a nil resolver skips every conflict.
func Run(ctx context.Context, b *Batch, p Previewer, r filestoreservice.Resolver, log *zap.Logger) (Report, error) {
	if p == nil {
		p = AcceptAll
	}
	if log == nil {
		log = zap.NewNop()
	}

	attempts := 0
	for b.Stage() != StageDone {
		if err := ctx.Err(); err != nil {
			b.Abort()
			return b.Report(), err
		}
		item, _ := b.Current()

		switch b.Stage() {
		case StagePreview:
			attempts = 0
			index, total := b.Position()
			ok, err := p.Preview(ctx, item, index, total)
			if err != nil {
				b.Abort()
				return b.Report(), fmt.Errorf("preview %s: %w", item.Name, err)
			}
			if ok {
				err = b.Accept()
			} else {
				err = b.Reject()
			}
			if err != nil {
				return b.Report(), err
			}

		case StageConflict:
			res := filestoreservice.Skip()
			if r != nil {
				var err error
				if res, err = r.Resolve(ctx, item.Name); err != nil {
					b.Abort()
					return b.Report(), fmt.Errorf("resolve %s: %w", item.Name, err)
				}
			}

			err := b.Resolve(res)
			if err == nil {
				continue
			}
			log.Warn("conflict resolution failed", zap.String("file", item.Name), zap.Error(err))
			attempts++
			if errors.Is(err, filestoreservice.ErrNameConflict) || errors.Is(err, filestoreservice.ErrInvalidName) {
				if attempts >= maxResolveAttempts {
					b.Abort()
					return b.Report(), err
				}
			}
		}
	}

	return b.Report(), nil
}
