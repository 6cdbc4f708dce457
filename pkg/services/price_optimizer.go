package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

// Deal thresholds. The "good deal" percentile and the "best price"
// tolerance band are deliberately independent knobs: how aggressive each
// should be is a product decision, so they are not collapsed into one.
const (
	// goodDealPercentileDivisor selects the nearest-rank 20th percentile:
	// sorted[count/5].
	goodDealPercentileDivisor = 5

	// highPriceRatio marks prices above average * ratio as "high".
	highPriceRatio = 1.2

	// Score reported when there is no history to compare against.
	noHistoryScore = 0.5

	// bestTimeMaxConfidence caps best-day confidence regardless of how
	// much history exists.
	bestTimeMaxConfidence = 0.9

	// bestTimeFullHistoryCount is the history size at which best-day
	// confidence would reach 1.0 before capping.
	bestTimeFullHistoryCount = 20
)

// bestPriceTolerance accepts prices within 5% of the historical low as
// "best price".
var bestPriceTolerance = decimal.RequireFromString("1.05")

// PriceOptimizerService scores current prices against recorded history
// and suggests when to buy.
type PriceOptimizerService interface {
	// Analyze never fails: with an empty history it returns a degraded
	// analysis around the current price rather than an error.
	Analyze(itemName string, currentPrice decimal.Decimal, history []models.PricePoint) models.PriceAnalysis

	// PredictBestTimeToBuy buckets history by day of week and picks the
	// cheapest average day. Sparse data degrades to Monday with zero
	// savings.
	PredictBestTimeToBuy(itemName string, history []models.PricePoint) models.BestTimePrediction
}

type priceOptimizer struct {
	logger *zap.Logger
}

func NewPriceOptimizerService(logger *zap.Logger) PriceOptimizerService {
	return &priceOptimizer{logger: logger.Named("price-optimizer")}
}

var _ PriceOptimizerService = (*priceOptimizer)(nil)

func (p *priceOptimizer) Analyze(itemName string, currentPrice decimal.Decimal, history []models.PricePoint) models.PriceAnalysis {
	if len(history) == 0 {
		return models.PriceAnalysis{
			ItemName:       itemName,
			CurrentPrice:   currentPrice,
			AveragePrice:   currentPrice,
			MedianPrice:    currentPrice,
			LowestPrice:    currentPrice,
			HighestPrice:   currentPrice,
			PriceScore:     noHistoryScore,
			Recommendation: "Insufficient price history",
		}
	}

	prices := make([]decimal.Decimal, 0, len(history))
	for _, pt := range history {
		prices = append(prices, pt.Price)
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].Cmp(prices[j]) < 0 })

	count := len(prices)
	lowest := prices[0]
	highest := prices[count-1]
	average := decimalMean(prices)
	// Upper median for even counts; not interpolated.
	median := prices[count/2]
	percentile20 := prices[count/goodDealPercentileDivisor]

	isGoodDeal := currentPrice.Cmp(percentile20) <= 0
	isBestPrice := currentPrice.Cmp(lowest.Mul(bestPriceTolerance)) <= 0

	var savingsPct float64
	if average.Sign() > 0 {
		savingsPct, _ = average.Sub(currentPrice).Div(average).Mul(decimal.NewFromInt(100)).Float64()
	}

	score := 1.0
	if highest.Cmp(lowest) > 0 {
		span, _ := highest.Sub(lowest).Float64()
		above, _ := currentPrice.Sub(lowest).Float64()
		score = clamp(1-above/span, 0, 1)
	}

	analysis := models.PriceAnalysis{
		ItemName:          itemName,
		CurrentPrice:      currentPrice,
		AveragePrice:      average,
		MedianPrice:       median,
		LowestPrice:       lowest,
		HighestPrice:      highest,
		IsGoodDeal:        isGoodDeal,
		IsBestPrice:       isBestPrice,
		PriceScore:        score,
		SavingsPercentage: savingsPct,
	}
	analysis.Recommendation = recommendationText(analysis)

	return analysis
}

func recommendationText(a models.PriceAnalysis) string {
	switch {
	case a.IsBestPrice:
		return "Excellent price! This is the best price on record."
	case a.IsGoodDeal:
		return fmt.Sprintf("Good deal! %.0f%% below average", a.SavingsPercentage)
	case a.CurrentPrice.Cmp(a.AveragePrice) <= 0:
		return "Fair price, slightly below average"
	case a.CurrentPrice.Cmp(a.AveragePrice.Mul(decimal.NewFromFloat(highPriceRatio))) > 0:
		return "Price is high right now, consider waiting"
	default:
		return "Average price"
	}
}

func (p *priceOptimizer) PredictBestTimeToBuy(itemName string, history []models.PricePoint) models.BestTimePrediction {
	buckets := make(map[time.Weekday][]decimal.Decimal)
	for _, pt := range history {
		day := pt.RecordedAt.Weekday()
		buckets[day] = append(buckets[day], pt.Price)
	}

	prediction := models.BestTimePrediction{
		ItemName: itemName,
		BestDay:  time.Monday,
		WorstDay: time.Monday,
	}

	if len(buckets) == 0 {
		return prediction
	}

	first := true
	// Fixed Sunday..Saturday scan keeps the result deterministic when
	// day averages tie.
	for day := time.Sunday; day <= time.Saturday; day++ {
		prices, ok := buckets[day]
		if !ok {
			continue
		}
		avg := decimalMean(prices)
		if first || avg.Cmp(prediction.BestDayAverage) < 0 {
			prediction.BestDay = day
			prediction.BestDayAverage = avg
		}
		if first || avg.Cmp(prediction.WorstDayAverage) > 0 {
			prediction.WorstDay = day
			prediction.WorstDayAverage = avg
		}
		first = false
	}

	prediction.PotentialSavings = prediction.WorstDayAverage.Sub(prediction.BestDayAverage)
	prediction.Confidence = math.Min(bestTimeMaxConfidence,
		float64(len(history))/bestTimeFullHistoryCount)

	p.logger.Debug("Predicted best time to buy",
		zap.String("item", itemName),
		zap.Stringer("best_day", prediction.BestDay),
		zap.Float64("confidence", prediction.Confidence))

	return prediction
}
