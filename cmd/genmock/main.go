// Command genmock writes deterministic synthetic datasets in the three BTS
// layouts read by the service: the trend, cause and airport CSVs. The same
// seed always produces byte-identical files.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type airport struct {
	code, city, name string
	// traffic scales monthly arrivals; delay shifts the delay probability.
	traffic, delay float64
}

var airports = []airport{
	{code: "ATL", city: "Atlanta, GA", name: "Hartsfield-Jackson Atlanta International", traffic: 3.0, delay: 0.00},
	{code: "EWR", city: "Newark, NJ", name: "Newark Liberty International", traffic: 1.4, delay: 0.08},
	{code: "ORD", city: "Chicago, IL", name: "Chicago O'Hare International", traffic: 2.4, delay: 0.05},
	{code: "PDX", city: "Portland, OR", name: "Portland International", traffic: 0.6, delay: -0.03},
	{code: "SEA", city: "Seattle, WA", name: "Seattle/Tacoma International", traffic: 1.2, delay: -0.01},
	{code: "SFO", city: "San Francisco, CA", name: "San Francisco International", traffic: 1.5, delay: 0.06},
}

var carriers = []string{
	"Alaska Airlines Inc.",
	"Delta Air Lines Inc.",
	"United Air Lines Inc.",
}

const (
	firstYear = 2013
	lastYear  = 2020
	// flightRows is the number of single-flight rows in the airport dataset.
	flightRows = 5000
)

func main() {
	outDir := flag.String("out-dir", "data", "directory to write the CSV files to")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if err := run(*outDir, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string, seed uint64) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	monthly := generateMonthly(rng)
	files := []struct {
		name string
		df   dataframe.DataFrame
	}{
		{"delays_updated.csv", monthly.trend()},
		{"delays_transformed.csv", monthly.cause()},
		{"delays_reduced.csv", generateFlights(rng)},
	}
	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := writeCSV(path, f.df); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		log.Printf("%s: %d rows", path, f.df.Nrow())
	}
	return nil
}

func writeCSV(path string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return df.Err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// monthlyRows holds one row per (year, month, airport, carrier) in column form.
type monthlyRows struct {
	year, month         []int
	code, name, carrier []string

	flights, delayed, avgDelay []float64

	carrierCt, weatherCt, nasCt, securityCt, lateAircraftCt []float64
}

func generateMonthly(rng *rand.Rand) *monthlyRows {
	m := &monthlyRows{}
	for year := firstYear; year <= lastYear; year++ {
		for month := 1; month <= 12; month++ {
			// Winter storms and summer thunderstorms push delays up.
			seasonal := 0.0
			switch month {
			case 12, 1, 2:
				seasonal = 0.05
			case 6, 7, 8:
				seasonal = 0.04
			}
			for _, a := range airports {
				for _, c := range carriers {
					flights := float64(int(a.traffic * float64(800+rng.IntN(4200))))
					p := clamp(0.12+a.delay+seasonal+rng.NormFloat64()*0.03, 0.01, 0.6)
					delayed := float64(int(flights * p))

					share := splitCauses(rng, delayed)
					m.year = append(m.year, year)
					m.month = append(m.month, month)
					m.code = append(m.code, a.code)
					m.name = append(m.name, a.name)
					m.carrier = append(m.carrier, c)
					m.flights = append(m.flights, flights)
					m.delayed = append(m.delayed, delayed)
					m.avgDelay = append(m.avgDelay, round2(5+p*60+rng.NormFloat64()*2))
					m.carrierCt = append(m.carrierCt, share[0])
					m.weatherCt = append(m.weatherCt, share[1])
					m.nasCt = append(m.nasCt, share[2])
					m.securityCt = append(m.securityCt, share[3])
					m.lateAircraftCt = append(m.lateAircraftCt, share[4])
				}
			}
		}
	}
	return m
}

// splitCauses spreads delayed arrivals over carrier, weather, NAS, security
// and late aircraft. The parts never sum to more than delayed.
func splitCauses(rng *rand.Rand, delayed float64) [5]float64 {
	weights := [5]float64{0.30, 0.05, 0.30, 0.01, 0.34}
	var total float64
	for i := range weights {
		weights[i] *= 0.75 + rng.Float64()/2
		total += weights[i]
	}
	var out [5]float64
	for i, w := range weights {
		out[i] = round2(delayed * w / total * 0.98)
	}
	return out
}

func (m *monthlyRows) trend() dataframe.DataFrame {
	return dataframe.New(
		series.New(m.year, series.Int, "year"),
		series.New(m.month, series.Int, "month"),
		series.New(m.carrier, series.String, "carrier_name"),
		series.New(m.code, series.String, "airport_code"),
		series.New(m.flights, series.Float, "arr_flights"),
		series.New(m.delayed, series.Float, "arr_del15"),
		series.New(m.avgDelay, series.Float, "avg_delay_min"),
	)
}

func (m *monthlyRows) cause() dataframe.DataFrame {
	return dataframe.New(
		series.New(m.year, series.Int, "year"),
		series.New(m.month, series.Int, "month"),
		series.New(m.carrier, series.String, "carrier_name"),
		series.New(m.name, series.String, "airport_name_cleansed"),
		series.New(m.flights, series.Float, "arr_flights"),
		series.New(m.delayed, series.Float, "arr_del15"),
		series.New(m.carrierCt, series.Float, "carrier_ct"),
		series.New(m.weatherCt, series.Float, "weather_ct"),
		series.New(m.nasCt, series.Float, "nas_ct"),
		series.New(m.securityCt, series.Float, "security_ct"),
		series.New(m.lateAircraftCt, series.Float, "late_aircraft_ct"),
	)
}

// generateFlights builds single-flight rows: arr_del15 is 0 or 1 and
// arr_delay is the arrival delay in minutes, negative when early.
func generateFlights(rng *rand.Rand) dataframe.DataFrame {
	var (
		years, months       []int
		codes, cities, cars []string
		del15, delay        []float64
	)
	for range flightRows {
		a := airports[rng.IntN(len(airports))]
		d := rng.NormFloat64()*25 + 4 + a.delay*100
		late := 0.0
		if d >= 15 {
			late = 1
		}
		years = append(years, firstYear+rng.IntN(lastYear-firstYear+1))
		months = append(months, 1+rng.IntN(12))
		codes = append(codes, a.code)
		cities = append(cities, a.city)
		cars = append(cars, carriers[rng.IntN(len(carriers))])
		del15 = append(del15, late)
		delay = append(delay, round2(d))
	}
	return dataframe.New(
		series.New(years, series.Int, "year"),
		series.New(months, series.Int, "month"),
		series.New(cars, series.String, "carrier_name"),
		series.New(codes, series.String, "airport_code"),
		series.New(cities, series.String, "city"),
		series.New(del15, series.Float, "arr_del15"),
		series.New(delay, series.Float, "arr_delay"),
	)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
