package simtool

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/logger"
)

const (
	randomFloatDivisor = 1000000
	allianceSize       = 3
)

// Counter generation ranges, roughly matching a mid-tier team's output.
const (
	maxAutoCoral   = 3
	maxTeleopCoral = 6
	maxAlgae       = 4
	maxMisses      = 2
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomCount(max int) int {
	return int(getRandomFloat() * float64(max+1))
}

// generateMatch produces six plausible records for one match, three per
// alliance. Team numbers are synthetic but stable per (match, slot) so
// repeated runs collide on the same keys, exercising the merge path.
func generateMatch(config *Config, matchNumber int, stats *Stats) []model.ScoutingRecord {
	records := make([]model.ScoutingRecord, 0, allianceSize*2)
	for slot := 0; slot < allianceSize*2; slot++ {
		alliance := model.AllianceRed
		if slot >= allianceSize {
			alliance = model.AllianceBlue
		}
		team := 1000 + (matchNumber*allianceSize*2+slot)%60

		rec := model.ScoutingRecord{
			ID:          uuid.New().String(),
			EventKey:    config.EventKey,
			MatchNumber: strconv.Itoa(matchNumber),
			TeamKey:     strconv.Itoa(team),
			Alliance:    alliance,
			ScoutName:   "sim-scout-" + strconv.Itoa(slot),

			AutoCoralPlaceL1Count:  randomCount(maxAutoCoral),
			AutoCoralPlaceL2Count:  randomCount(maxAutoCoral - 1),
			AutoCoralPlaceL3Count:  randomCount(maxAutoCoral - 1),
			AutoCoralPlaceL4Count:  randomCount(maxAutoCoral),
			AutoCoralPlaceDropMiss: randomCount(maxMisses),
			AutoCoralPickGround:    randomCount(maxAutoCoral),
			AutoCoralPickStation:   randomCount(maxAutoCoral),

			TeleopCoralPlaceL1Count:  randomCount(maxTeleopCoral),
			TeleopCoralPlaceL2Count:  randomCount(maxTeleopCoral),
			TeleopCoralPlaceL3Count:  randomCount(maxTeleopCoral - 2),
			TeleopCoralPlaceL4Count:  randomCount(maxTeleopCoral - 2),
			TeleopCoralPlaceDropMiss: randomCount(maxMisses),
			TeleopCoralPickGround:    randomCount(maxTeleopCoral),
			TeleopCoralPickStation:   randomCount(maxTeleopCoral),

			AutoAlgaePlaceNetShot:     randomCount(maxAlgae - 2),
			AutoAlgaePlaceProcessor:   randomCount(maxAlgae - 2),
			TeleopAlgaePlaceNetShot:   randomCount(maxAlgae),
			TeleopAlgaePlaceProcessor: randomCount(maxAlgae),
			TeleopAlgaePickGround:     randomCount(maxAlgae),
			TeleopAlgaePickReef:       randomCount(maxAlgae),

			AutoLeave: getRandomFloat() < 0.8,

			CreatedAt: time.Now().UTC(),
		}

		switch {
		case getRandomFloat() < 0.5:
			rec.EndgameDeepClimb = true
		case getRandomFloat() < 0.5:
			rec.EndgameShallowClimb = true
		case getRandomFloat() < 0.5:
			rec.EndgameParked = true
		}

		if getRandomFloat() < config.CorruptRate {
			// Inject a deliberate miscount so validation has something
			// to flag.
			rec.TeleopCoralPlaceL4Count += 5
			stats.RecordsCorrupted++
		}

		records = append(records, rec)
	}
	return records
}

// generateBatches builds one batch per simulated device, records spread
// round-robin so every device sees a slice of every match.
func generateBatches(ctx context.Context, config *Config, stats *Stats) [][]model.ScoutingRecord {
	logger.Get().Info(ctx, "generating scouting batches",
		logger.Int("matches", config.Matches),
		logger.Int("devices", config.Devices),
	)

	batches := make([][]model.ScoutingRecord, config.Devices)
	for m := 1; m <= config.Matches; m++ {
		records := generateMatch(config, m, stats)
		for i, rec := range records {
			device := (m + i) % config.Devices
			batches[device] = append(batches[device], rec)
			stats.RecordsGenerated++
		}
	}
	return batches
}
