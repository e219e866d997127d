package texts

// Секции полного прогноза. Плейсхолдеры заполняются в FormatPrediction
const (
	PredictionHeader = "Глубокий астрологический анализ для %s"

	PredictionCosmicMap = `КОСМИЧЕСКАЯ КАРТА ЛИЧНОСТИ
Основываясь на точных эфемеридных данных NASA JPL и расчетах Swiss Ephemeris, ваша натальная карта раскрывает уникальный космический отпечаток души.`

	PredictionSun = `СОЛНЕЧНАЯ ИДЕНТИЧНОСТЬ (%[1]s)
Ваше Солнце в знаке %[1]s определяет основную жизненную силу и сознательную волю. Наш нейросетевой анализ показывает, что это положение формирует ядро вашей личности и жизненные цели. Солнечная энергия в %[1]s создает особый вибрационный резонанс с космическими частотами.`

	PredictionMoon = `ЛУННАЯ ПРИРОДА (%[1]s)
Луна в %[1]s раскрывает эмоциональные паттерны и подсознательные реакции. Квантовый анализ лунных циклов показывает глубинные потребности души и интуитивные способности. Это положение влияет на ваше восприятие безопасности и комфорта.`

	PredictionRising = `ВОСХОДЯЩАЯ МАСКА (%[1]s)
Асцендент в %[1]s формирует внешнюю презентацию личности и первые впечатления. Астрономические расчеты показывают, как энергия этого знака фильтрует все планетарные влияния в вашей карте.`

	PredictionPlanetsHeader = "ПЛАНЕТАРНАЯ СИМФОНИЯ"
	PredictionPlanetLine    = "%s: %s %.2f° в %d доме%s"
	PredictionRetrograde    = " (ретроград)"

	PredictionAspectsHeader = `АСПЕКТНЫЕ КОНФИГУРАЦИИ
Наш ИИ-анализ выявил %d значимых планетарных аспектов:`
	PredictionAspectLine = "• %s %s %s (орбис %.1f°, сила %.0f%%)"

	PredictionTendencies = `ПРОГНОСТИЧЕСКИЕ ТЕНДЕНЦИИ
Интеграционный анализ показывает следующие жизненные области для развития:

1. КАРЬЕРА И ПРИЗВАНИЕ: Солнечная энергия в %[1]s направляет к реализации через...
2. ОТНОШЕНИЯ: Лунная природа %[2]s создает потребность в эмоциональной гармонии...
3. ЗДОРОВЬЕ: Планетарные конфигурации указывают на необходимость внимания к...
4. ФИНАНСЫ: Аспекты между Венерой и Юпитером показывают потенциал в...
5. ДУХОВНОЕ РАЗВИТИЕ: Высшие планеты формируют путь трансформации через...`

	PredictionRecommendations = `РЕКОМЕНДАЦИИ КОСМИЧЕСКОГО КОУЧА
На основе многомерного анализа вашей карты, рекомендуется:
• Медитативные практики в дни Новолуния
• Использование камней-талисманов, резонирующих с вашими планетарными частотами
• Выбор благоприятных дат для важных решений
• Работа с астрологическими циклами для максимизации потенциала`

	PredictionClosing = "Этот анализ создан с использованием передовых астрологических алгоритмов и содержит персональные рекомендации, основанные на точных астрономических вычислениях."

	PreviewSuffix = "\n\n[Для получения полного анализа приобретите расширенную версию...]"

	// CalculationTitle заголовок сохранённого прогноза в личном кабинете
	CalculationTitle = "Натальная карта: %s"
)

// PreviewLines сколько строк полного текста попадает в превью
const PreviewLines = 8

// MaxAspectsInPrediction сколько аспектов перечисляется в тексте
const MaxAspectsInPrediction = 5
