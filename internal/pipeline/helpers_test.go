package pipeline

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/config"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

func testSpec() *model.ExportSpec {
	s := config.Default()
	return &s
}

func observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func num(v float64) model.Parameter {
	return model.Parameter{Kind: model.StorageNumber, Value: v}
}

func integer(v int64) model.Parameter {
	return model.Parameter{Kind: model.StorageInteger, Value: float64(v)}
}

func text(s string) model.Parameter {
	return model.Parameter{Kind: model.StorageText, Text: s, Display: s}
}

// cubicFeet returns the raw host value of a volume given in cubic metres
func cubicFeet(m3 float64) float64 {
	return m3 / model.CubicFeetToCubicMeters
}

// pieceParams returns every mandatory parameter of a beam-like piece
func pieceParams(name string, volumeM3 float64) map[string]model.Parameter {
	return map[string]model.Parameter{
		"Modelo":             text(name),
		"03. PRODUTO":        text("VIGA"),
		"04. GRUPO":          text("G1"),
		"05. SEÇÃO":          text("20x40"),
		"09. INFO ADICIONAL": text("-"),
		"08. COMPRIMENTO":    text("6,00"),
		"07. ALTURA":         text("40"),
		"06. LARGURA":        text("20"),
		"Volume":             num(cubicFeet(volumeM3)),
		"12. FCK":            text("C40"),
		"13. COBRIMENTO":     text("2,5"),
	}
}

func addPiece(snap *model.Snapshot, id model.ElementID, uid string, cat model.Category, params map[string]model.Parameter) *model.Element {
	el := &model.Element{ID: id, UniqueID: uid, Category: cat, Params: params}
	snap.Add(el)
	return el
}

func newResolver(t *testing.T, snap *model.Snapshot) (*Resolver, *observer.ObservedLogs) {
	t.Helper()
	log, logs := observed()
	return NewResolver(snap, testSpec(), log, nil), logs
}
