package ephemeris

// Config эфемериды.
// VSOP87_PATH каталог с файлами VSOP87B.mer ... VSOP87B.nep (каталог VI/81 в CDS).
// Без него планеты считаются по средним элементам орбит
type Config struct {
	VSOP87Path string `envconfig:"VSOP87_PATH"`
}

func (c *Config) vsop87Enabled() bool {
	return c != nil && c.VSOP87Path != ""
}
