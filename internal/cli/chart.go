package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/ephemeris"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/geocoding"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/logger"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/random"
	astroUsecase "github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/astro"
	"github.com/spf13/cobra"
)

type chartOptions struct {
	input      domain.BirthInput
	aspectMode string
	logLevel   string
	vsop87Path string
}

// newChartCmd расчёт натальной карты без запуска сервера, результат в stdout
func newChartCmd() *cobra.Command {
	opts := &chartOptions{}

	cmd := &cobra.Command{
		Use:          "chart",
		Short:        "Рассчитать натальную карту и вывести JSON",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, _ []string) error {
			return runChart(c, opts, c.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.input.Name, "name", "", "имя")
	cmd.Flags().StringVar(&opts.input.BirthDate, "date", "", "дата рождения, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.input.BirthTime, "time", "12:00", "время рождения, HH:MM")
	cmd.Flags().StringVar(&opts.input.BirthPlace, "place", "", "место рождения")
	cmd.Flags().StringVar(&opts.aspectMode, "aspect-mode", string(astroUsecase.AspectModeEcliptic), "ecliptic или legacy")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "уровень логирования")
	cmd.Flags().StringVar(&opts.vsop87Path, "vsop87", os.Getenv("VSOP87"), "каталог с файлами VSOP87B.*")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("place")

	return cmd
}

func runChart(c *cobra.Command, opts *chartOptions, out io.Writer) error {
	mode, err := astroUsecase.ParseAspectMode(opts.aspectMode)
	if err != nil {
		return err
	}

	log := logger.New(appName, &logger.Config{Level: opts.logLevel})
	ephemerisClient, err := ephemeris.New(&ephemeris.Config{VSOP87Path: opts.vsop87Path}, log)
	if err != nil {
		return err
	}

	service := astroUsecase.New(
		ephemerisClient,
		geocoding.New(log),
		nil,
		random.New(),
		astroUsecase.Config{AspectMode: mode},
		log,
	)

	result, err := service.Calculate(c.Context(), opts.input, nil)
	if err != nil {
		return fmt.Errorf("failed to calculate chart: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
