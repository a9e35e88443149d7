package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
)

// Default returns the field table of the production deployment
func Default() model.ExportSpec {
	return model.ExportSpec{
		Envelope: model.Envelope{
			Site:     "Obra da Serpa",
			Project:  "Serpa",
			Designer: "Projetista",
		},
		Fields: model.FieldNames{
			Name:          "Modelo",
			Mark:          "Marca",
			Product:       "03. PRODUTO",
			Group:         "04. GRUPO",
			Section:       "05. SEÇÃO",
			Info:          "09. INFO ADICIONAL",
			Length:        "08. COMPRIMENTO",
			Height:        "07. ALTURA",
			Width:         "06. LARGURA",
			Volume:        "Volume",
			Weight:        "Peso",
			ConcreteClass: "12. FCK",
			Cover:         "13. COBRIMENTO",
		},
		Rebar: model.RebarSpec{
			Mark:        "Número do vergalhão",
			Quantity:    "Quantidade",
			TotalLength: "Comprimento total da barra",
			Material:    "Material",
			TypeName:    "Nome do tipo",
			SteelLabel:  "AÇO",
			WireLabel:   "FIO",
			StrandLabel: "CORDOALHA",
		},
		Derive: model.DeriveSpec{
			Weight:         model.StrategyDerived,
			Area:           model.StrategyDerived,
			Density:        2500,
			LengthDivisor:  1,
			SectionDivisor: 100,
		},
		Features: model.Features{
			AssemblyRollup: true,
			SubTables:      true,
		},
		Status: model.StatusSpec{
			ControlCode: "02. Código de Controle",
			Status:      "20. Status da Peça",
			Date:        "21. Data do Status",
			Codes:       DefaultStatusCodes(),
		},
		Output: model.OutputSpec{
			Prefix: "Export",
		},
		LogMode: "dev",
	}
}

// DefaultStatusCodes is the status table of the planning tool
func DefaultStatusCodes() map[string]string {
	return map[string]string{
		"000001": "Projetada",
		"000002": "Programada",
		"000003": "Corte e Dobra Realizado",
		"000004": "Armação Realizada",
		"000005": "Forma Realizada",
		"000006": "Forma com Armação Realizada",
		"000007": "Concretagem Realizada",
		"000008": "Acabamento Realizado",
		"000009": "Expedida para a Obra",
		"000010": "Devolvida pela Obra",
		"000011": "Descarregada na Obra",
		"000012": "Montada na Obra",
	}
}

// Load builds the configuration: defaults, then .env, then the YAML file
// (path argument or PLANNIX_CONFIG), then PLANNIX_* environment overrides.
func Load(path string) (*model.ExportSpec, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv("PLANNIX_CONFIG"))
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *model.ExportSpec) {
	if v, ok := lookupEnv("PLANNIX_SITE"); ok {
		cfg.Envelope.Site = v
	}
	if v, ok := lookupEnv("PLANNIX_PROJECT"); ok {
		cfg.Envelope.Project = v
	}
	if v, ok := lookupEnv("PLANNIX_DESIGNER"); ok {
		cfg.Envelope.Designer = v
	}
	if v, ok := lookupEnv("PLANNIX_OUTPUT_DIR"); ok {
		cfg.Output.Dir = v
	}
	if v, ok := lookupEnv("PLANNIX_LOG_MODE"); ok {
		cfg.LogMode = v
	}
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks a configuration before it is handed to the pipeline
func Validate(cfg *model.ExportSpec) error {
	required := append(model.MandatoryFields(), model.FieldHeight)
	for _, f := range required {
		if cfg.Fields.Physical(f) == "" {
			return fmt.Errorf("config: mandatory field %s has no parameter name", f)
		}
	}
	for name, strategy := range map[string]string{"weight": cfg.Derive.Weight, "area": cfg.Derive.Area} {
		if strategy != model.StrategyDerived && strategy != model.StrategyParameter {
			return fmt.Errorf("config: unknown %s strategy %q", name, strategy)
		}
	}
	if cfg.Derive.Weight == model.StrategyDerived && cfg.Derive.Density <= 0 {
		return fmt.Errorf("config: density must be positive, got %v", cfg.Derive.Density)
	}
	if cfg.Derive.LengthDivisor <= 0 || cfg.Derive.SectionDivisor <= 0 {
		return errors.New("config: unit divisors must be positive")
	}
	if len(cfg.Status.Codes) == 0 {
		return errors.New("config: status table is empty")
	}
	return nil
}
