// Package domain models numeric weather-model samples and the derived
// flight-safety values computed from them.
//
// # Data Source
//
// Samples originate from global/regional model point forecasts (Open-Meteo
// style hourly series). The upstream collector normalizes every value into the
// units below before publishing a forecast payload to the Kafka source topic;
// nothing in this module converts provider-specific units.
//
// # Units
//
//	temperature, dew point     °C
//	wind speed, gust           km/h (converted to knots only when encoding)
//	wind direction             degrees true, the direction the wind blows FROM, [0,360)
//	pressure                   hPa (QNH)
//	cloud cover                percent of sky, per layer (low drives ceiling)
//	visibility                 km
//	precipitation              mm over the sample hour
//	CAPE                       J/kg
//	lifted index               K (negative = unstable)
//
// Optional values are pointers: nil means "the model did not supply it", which
// is different from zero (zero wind is calm, zero low cloud is a clear layer).
//
// # Weather Codes
//
// Present weather arrives as a WMO 4677 code and is decoded into a closed
// [Phenomenon] value (kind + intensity tier). Codes outside the table decode to
// clear sky so that an unexpected code can never produce a phantom hazard.
//
//	0–3 clear | 45,48 fog | 51,53,55 drizzle | 56,57 freezing drizzle
//	61,63,65 rain | 66,67 freezing rain | 71,73,75 snow | 77 snow grains
//	80,81,82 rain showers | 85,86 snow showers | 95 thunderstorm
//	96,99 thunderstorm with light/heavy hail
//
// # Dew Point
//
// When the model omits dew point it is derived from relative humidity with the
// Magnus formula (a=17.27, b=237.7) and clamped to the air temperature. Humidity
// outside (0,100] yields temperature − 5 °C, a conservative estimate that keeps
// the dew-point spread wide enough not to trigger fog heuristics.
//
// # Risk Levels
//
// Fog and convective assessments use ordered, scale-specific level enums whose
// names follow the operator's vocabulary (Bajo, Moderado, Alto, ...). Every
// assessment carries its evidence as tagged findings so downstream advisory
// text can cite the raw values that drove the level.
package domain
