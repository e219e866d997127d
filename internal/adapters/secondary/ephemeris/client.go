package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/astronomy"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/planetelements"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

const (
	// MinYear и MaxYear границы, в которых ряды Meeus дают доли градуса
	MinYear = 1800
	MaxYear = 2100

	kmPerAU = 149597870.7
	// rateStep полушаг численной производной расстояния, сутки
	rateStep = 1.0 / 24
	// secondsPerDegree звёздные секунды на градус часового угла
	secondsPerDegree = 240.0
	// precessionPerCentury общая прецессия по долготе, градусы за столетие
	precessionPerCentury = 1.396971
)

// planets индексы VSOP87 и средних элементов; у обоих пакетов порядок Mercury..Neptune совпадает
var planets = map[domain.Body]int{
	domain.BodyMercury: pp.Mercury,
	domain.BodyVenus:   pp.Venus,
	domain.BodyMars:    pp.Mars,
	domain.BodyJupiter: pp.Jupiter,
	domain.BodySaturn:  pp.Saturn,
	domain.BodyUranus:  pp.Uranus,
	domain.BodyNeptune: pp.Neptune,
}

// heliocentric эклиптические координаты от центра Солнца, равноденствие даты
type heliocentric struct {
	lon, lat unit.Angle
	r        float64 // а.е.
}

// Client эфемериды на рядах Meeus: Солнце и Луна по главам 25 и 47,
// планеты по VSOP87 (если заданы файлы) или по средним элементам орбит, Плутон по главе 37
type Client struct {
	Log *slog.Logger

	vsop87 map[int]*pp.V87Planet
}

func New(cfg *Config, log *slog.Logger) (service.IEphemeris, error) {
	client := &Client{Log: log}
	if !cfg.vsop87Enabled() {
		log.Info("VSOP87 path is not set, planets use mean orbital elements")
		return client, nil
	}

	client.vsop87 = make(map[int]*pp.V87Planet, pp.Neptune+1)
	for ibody := pp.Mercury; ibody <= pp.Neptune; ibody++ {
		planet, err := pp.LoadPlanetPath(ibody, cfg.VSOP87Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load VSOP87 planet %d from %s: %w", ibody, cfg.VSOP87Path, err)
		}
		client.vsop87[ibody] = planet
	}

	log.Info("VSOP87 theories loaded", "path", cfg.VSOP87Path)
	return client, nil
}

// Snapshot считает положения всех тел карты на момент instant
func (c *Client) Snapshot(ctx context.Context, instant time.Time, coords domain.Coordinates) (*domain.SkySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instant = instant.UTC()
	if year := instant.Year(); year < MinYear || year >= MaxYear {
		return nil, fmt.Errorf("%w: year %d is outside supported range %d-%d",
			domain.ErrInvalidBirthData, year, MinYear, MaxYear-1)
	}

	// разница TT и UT (около минуты) меньше точности карты, jd используется как jde
	jd := julian.TimeToJD(instant)
	gst := float64(sidereal.Apparent(jd)) / secondsPerDegree
	sunRA, _ := solar.ApparentEquatorial(jd)

	snapshot := &domain.SkySnapshot{
		JulianDay:         jd,
		LocalSiderealTime: astronomy.NormalizeDegrees(gst + coords.Longitude),
		SunRightAscension: astronomy.NormalizeDegrees(unit.Angle(sunRA).Deg()),
		Positions:         make(map[domain.Body]domain.BodyPosition, len(domain.Bodies)),
	}

	for _, body := range domain.Bodies {
		lon, _, err := c.geocentric(body, jd)
		if err != nil {
			return nil, err
		}

		_, before, err := c.geocentric(body, jd-rateStep)
		if err != nil {
			return nil, err
		}
		_, after, err := c.geocentric(body, jd+rateStep)
		if err != nil {
			return nil, err
		}
		rate := (after - before) / (2 * rateStep)

		if math.IsNaN(lon) || math.IsNaN(rate) {
			return nil, fmt.Errorf("ephemeris returned NaN for %s at jd %f", body, jd)
		}

		snapshot.Positions[body] = domain.BodyPosition{
			Body:         body,
			Longitude:    astronomy.NormalizeDegrees(lon),
			DistanceRate: rate,
		}
	}

	if math.IsNaN(snapshot.LocalSiderealTime) || math.IsNaN(snapshot.SunRightAscension) {
		return nil, fmt.Errorf("ephemeris returned NaN sidereal data at jd %f", jd)
	}

	c.Log.DebugContext(ctx, "ephemeris snapshot calculated",
		"julian_day", jd,
		"lst", snapshot.LocalSiderealTime,
		"sun_ra", snapshot.SunRightAscension,
		"vsop87", c.vsop87 != nil,
	)

	return snapshot, nil
}

// geocentric возвращает геоцентрическую эклиптическую долготу (градусы) и расстояние (а.е.)
func (c *Client) geocentric(body domain.Body, jde float64) (float64, float64, error) {
	switch body {
	case domain.BodySun:
		earth := c.earth(jde)
		return earth.lon.Deg() + 180, earth.r, nil
	case domain.BodyMoon:
		lon, _, distKm := moonposition.Position(jde)
		return lon.Deg(), distKm / kmPerAU, nil
	case domain.BodyPluto:
		helioLon, helioLat, r := pluto.Heliocentric(jde)
		// Плутон дан на J2000, остальные тела на равноденствие даты
		helioLon += unit.AngleFromDeg(precessionPerCentury * base.J2000Century(jde))
		lon, dist := fromEarth(heliocentric{lon: helioLon, lat: helioLat, r: r}, c.earth(jde))
		return lon, dist, nil
	}

	ibody, ok := planets[body]
	if !ok {
		return 0, 0, fmt.Errorf("no ephemeris for body %s", body)
	}
	lon, dist := fromEarth(c.planet(ibody, jde), c.earth(jde))
	return lon, dist, nil
}

func (c *Client) earth(jde float64) heliocentric {
	if c.vsop87 != nil {
		return c.planet(pp.Earth, jde)
	}

	t := base.J2000Century(jde)
	sun, _ := solar.True(t)
	return heliocentric{lon: sun + math.Pi, r: solar.Radius(t)}
}

func (c *Client) planet(ibody int, jde float64) heliocentric {
	if theory, ok := c.vsop87[ibody]; ok {
		lon, lat, r := theory.Position(jde)
		return heliocentric{lon: lon, lat: lat, r: r}
	}
	return meanOrbit(ibody, jde)
}

// meanOrbit положение по средним элементам орбиты даты (глава 31) и уравнению Кеплера
func meanOrbit(ibody int, jde float64) heliocentric {
	var el planetelements.Elements
	planetelements.Mean(ibody, jde, &el)

	anomaly := kepler.Kepler3(el.Ecc, el.Lon-el.Peri)
	trueAnomaly := kepler.True(anomaly, el.Ecc)
	// аргумент широты от восходящего узла
	u := trueAnomaly + el.Peri - el.Node

	sinU, cosU := math.Sincos(u.Rad())
	sinI, cosI := math.Sincos(el.Inc.Rad())

	return heliocentric{
		lon: el.Node + unit.Angle(math.Atan2(cosI*sinU, cosU)),
		lat: unit.Angle(math.Asin(sinI * sinU)),
		r:   kepler.Radius(anomaly, el.Ecc, el.Axis),
	}
}

// fromEarth переносит гелиоцентрическое положение тела в геоцентрическое
func fromEarth(body, earth heliocentric) (float64, float64) {
	x, y, z := rectangular(body)
	ex, ey, ez := rectangular(earth)
	x, y, z = x-ex, y-ey, z-ez

	return unit.Angle(math.Atan2(y, x)).Deg(), math.Sqrt(x*x + y*y + z*z)
}

func rectangular(h heliocentric) (float64, float64, float64) {
	sinLon, cosLon := math.Sincos(h.lon.Rad())
	sinLat, cosLat := math.Sincos(h.lat.Rad())
	return h.r * cosLat * cosLon, h.r * cosLat * sinLon, h.r * sinLat
}
