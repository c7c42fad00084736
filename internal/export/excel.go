package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	logPrefix = "zproveart"
	logSheet  = "ZPROVEART"
)

var logHeader = []string{"timestamp", "itmref", "selected", "comment"}

// SelectionLog añade las selecciones del usuario a un libro xlsx diario.
// Un libro por día; la primera escritura del día crea el fichero con su
// cabecera. Las escrituras se serializan con un mutex: excelize reescribe
// el fichero completo al guardar.
type SelectionLog struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

func NewSelectionLog(dir string) (*SelectionLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creando directorio de exportación: %w", err)
	}
	return &SelectionLog{dir: dir, now: time.Now}, nil
}

// DailyPath devuelve la ruta del libro del día dado.
func (l *SelectionLog) DailyPath(day time.Time) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_%s.xlsx", logPrefix, day.Format("20060102")))
}

// Append añade una fila {timestamp, itmref, selected, comment} al libro del
// día y devuelve la ruta escrita.
func (l *SelectionLog) Append(itmref string, selected bool, comment string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	path := l.DailyPath(now)

	var f *excelize.File
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return "", fmt.Errorf("abriendo log diario: %w", err)
		}
	} else {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", logSheet); err != nil {
			return "", fmt.Errorf("preparando log diario: %w", err)
		}
		for i, h := range logHeader {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(logSheet, cell, h); err != nil {
				return "", fmt.Errorf("escribiendo cabecera: %w", err)
			}
		}
	}
	defer f.Close()

	rows, err := f.GetRows(logSheet)
	if err != nil {
		return "", fmt.Errorf("leyendo log diario: %w", err)
	}

	sel := "0"
	if selected {
		sel = "1"
	}
	values := []string{now.Format("2006-01-02 15:04:05"), itmref, sel, comment}

	rowNum := len(rows) + 1
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
		if err := f.SetCellValue(logSheet, cell, v); err != nil {
			return "", fmt.Errorf("escribiendo fila: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("guardando log diario: %w", err)
	}
	return path, nil
}
