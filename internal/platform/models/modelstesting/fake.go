package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

// FakeRecord returns simple product models.Record with fake data.
func FakeRecord(ops ...func(r *models.Record)) models.Record {
	record := models.Record{
		Code:        faker.UUIDDigit(),
		Name:        faker.Word(),
		Description: faker.Sentence(),
		Price:       decimal.NewFromInt(int64(rand.Intn(200) + 1)),
		Weight:      decimal.NewFromFloat(0.5),
		Stock:       rand.Intn(100),
		EAN:         faker.UUIDDigit(),
		Brand:       faker.Word(),
		Categories:  []string{faker.Word(), faker.Word()},
		Image:       "https://img.example.com/" + faker.Word() + ".jpg",
		Gallery:     fakeGallery(),
	}

	for _, op := range ops {
		op(&record)
	}

	return record
}

// FakeVariationRecord returns variation row models.Record of group parentCode with provided size and color.
func FakeVariationRecord(parentCode, size, color string, ops ...func(r *models.Record)) models.Record {
	record := FakeRecord(func(r *models.Record) {
		r.GroupCode = parentCode
		r.Size = size
		r.Color = color
		r.LotCount = -1
		r.IsVariation = true
	})

	for _, op := range ops {
		op(&record)
	}

	return record
}

// FakePage returns n fake simple product parsing results.
func FakePage(n int) []models.ParsingResult {
	results := make([]models.ParsingResult, 0, n)
	for range n {
		results = append(results, models.ParsingResult{Record: FakeRecord()})
	}

	return results
}

func fakeGallery() []string {
	galleryLen := rand.Intn(4)
	gallery := make([]string, 0, galleryLen)
	for range galleryLen {
		gallery = append(gallery, "https://img.example.com/"+faker.Word()+".jpg")
	}

	return gallery
}
