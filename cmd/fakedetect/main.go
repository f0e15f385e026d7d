package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"fakedetect/pkg/config"
	"fakedetect/pkg/filehandler"
	"fakedetect/pkg/models"
	"fakedetect/pkg/pipeline"
)

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	alertColor   = color.New(color.FgRed, color.Bold).SprintFunc()
)

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

func printAlert(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", alertColor("[!!!]"), fmt.Sprintf(format, args...))
}

var flags struct {
	outputDir  string
	configPath string
	nearMatch  bool
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "fakedetect <image-or-directory>",
	Short: "Forensic analysis of image manipulation and AI generation",
	Long: "fakedetect runs six independent forensic heuristics (metadata, error-level\n" +
		"analysis, noise consistency, color histogram, copy-move, texture artifacts)\n" +
		"against an image and aggregates their verdicts into one report.",
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flags.outputDir, "output", "o", "output", "Output directory for reports and visualizations")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Optional YAML config file with threshold overrides")
	rootCmd.Flags().BoolVar(&flags.nearMatch, "near-match", false, "Use perceptual-hash block matching in the copy-move detector")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	fmt.Println("FakeDetect v1.0.0")
	fmt.Println("Ferramenta Forense de Imagens")
	fmt.Println("Detectando manipulação e geração artificial em imagens")
	fmt.Println("---------------------------------")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := zerolog.WarnLevel
	if flags.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	p := pipeline.New(cfg, log)

	info, err := os.Stat(args[0])
	if err != nil {
		printError("Caminho não existe: %s", args[0])
		os.Exit(1)
	}

	if info.IsDir() {
		return analyzeDirectory(args[0], p, cfg)
	}
	analyzeSingleImage(args[0], p, cfg)
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	// Flags win over the config file.
	if flags.outputDir != "output" || cfg.OutputDir == "" {
		cfg.OutputDir = flags.outputDir
	}
	if flags.nearMatch {
		cfg.CopyMove.NearMatch = true
	}
	return cfg, nil
}

func analyzeDirectory(dirPath string, p *pipeline.Pipeline, cfg *config.Config) error {
	files, err := filehandler.FindImages(dirPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printWarning("Nenhuma imagem encontrada em %s", dirPath)
		return nil
	}

	printInfo("Foram encontradas %d imagens para análise", len(files))
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Analisando imagens"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)

	for _, file := range files {
		analyzeSingleImage(file, p, cfg)
		bar.Add(1)
	}
	return nil
}

func analyzeSingleImage(path string, p *pipeline.Pipeline, cfg *config.Config) {
	printInfo("Analisando: %s", path)

	report, err := p.Analyze(path)
	if report == nil {
		// Fatal decode failure: no report, nothing persisted.
		printError("Erro ao analisar %s: %v", path, err)
		return
	}
	if err != nil {
		// Persistence failure: the in-memory report is still displayable.
		printWarning("Falha ao salvar resultados de %s: %v", path, err)
	}

	displayReport(report, cfg)
}

func displayReport(report *models.Report, cfg *config.Config) {
	fmt.Println("\n--- Resultados da Análise ---")

	for _, name := range models.AnalyzerNames {
		outcome := report.AnalysisResults[name]
		label := titleCase(name)

		switch res := outcome.(type) {
		case models.ErrorResult:
			printError("%s: erro na análise: %s", label, res.Error)
		default:
			verdict, findings := extractVerdict(outcome)
			if verdict {
				printAlert("%s: Suspeito", label)
				for _, finding := range findings {
					fmt.Printf("      - %s\n", finding)
				}
			} else {
				printSuccess("%s: Limpo", label)
			}
		}
	}

	if meta, ok := report.AnalysisResults[models.AnalyzerMetadata].(*models.MetadataResult); ok && len(meta.ExifData) > 0 {
		fmt.Println("\nInformações de Metadados:")
		for tag, value := range meta.ExifData {
			fmt.Printf("  %-30s %s\n", tag, value)
		}
	}

	fmt.Println("\nRelatório Técnico de Constatação:")
	for _, name := range models.AnalyzerNames {
		suspicious, _ := extractVerdict(report.AnalysisResults[name])
		if !suspicious {
			continue
		}
		label := titleCase(name)
		fmt.Printf("\n== Parecer Técnico – %s ==\n%s\n", label, models.Narrative(name, true))
	}

	base := strings.TrimSuffix(report.Filename, filepath.Ext(report.Filename))
	printInfo("Resultados detalhados salvos em: %s/%s_report.json", cfg.OutputDir, base)
	printInfo("Visualizações salvas em: %s/%s_*.jpg/png", cfg.OutputDir, base)
}

// extractVerdict pulls the suspicious flag and findings out of any
// successful outcome; an error record reports (false, nil).
func extractVerdict(outcome models.Outcome) (bool, []string) {
	holder, ok := outcome.(interface{ GetVerdict() models.Verdict })
	if !ok {
		return false, nil
	}
	verdict := holder.GetVerdict()
	return verdict.Suspicious, verdict.Findings
}

// titleCase turns an analyzer key like "copy_move" into "Copy Move".
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
