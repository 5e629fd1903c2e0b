package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/jhoicas/femibot-stock/pkg/logger"
)

// Watcher avisa cuando cambia el archivo de stock en disco. Observa el directorio y
// no el archivo: los editores y las copias suelen reemplazarlo por rename.
type Watcher struct {
	fs       *fsnotify.Watcher
	base     string
	onChange func()
	log      *logger.Logger
}

// NewWatcher empieza a observar path; onChange se llama en cada escritura,
// creación, renombre o borrado del archivo.
func NewWatcher(path string, onChange func(), log *logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("crear watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("observar %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{fs: fw, base: filepath.Base(abs), onChange: onChange, log: log}, nil
}

// Run procesa eventos hasta que ctx se cancela. Cierra el watcher al salir.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			w.log.Info().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("archivo de stock modificado")
			w.onChange()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher de stock")
		}
	}
}
