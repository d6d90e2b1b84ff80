// Package content holds the built-in offline practice material: the verse
// pool used when every provider fails, role-play scenarios, and sentence
// patterns.
package content

import (
	"math/rand"

	"speakflow/internal/tutor"
)

// Verses is the built-in offline verse pool.
var Verses = []tutor.DailyVerse{
	{
		Verse:      "Cast your cares on the LORD and he will sustain you; he will never let the righteous be shaken.",
		Reference:  "Psalm 55:22",
		Korean:     "네 짐을 여호와께 맡겨 버리라 너를 붙드시고 의인의 요동함을 영영히 허락지 아니하시리로다.",
		Reflection: "주님께 모든 짐을 맡기면 주님께서 당신을 붙드시고 평안을 주실 것입니다.",
	},
	{
		Verse:      "The Lord is my shepherd, I lack nothing.",
		Reference:  "Psalm 23:1",
		Korean:     "여호와는 나의 목자시니 내게 부족함이 없으리로다.",
		Reflection: "진정한 만족과 평안은 주님 안에서 찾을 수 있습니다.",
	},
	{
		Verse:      "For I know the plans I have for you, declares the Lord.",
		Reference:  "Jeremiah 29:11",
		Korean:     "너희를 향한 나의 생각을 내가 아나니...",
		Reflection: "미래에 대한 희망을 잃지 말고 나아가세요.",
	},
	{
		Verse:      "Love is patient, love is kind.",
		Reference:  "1 Corinthians 13:4",
		Korean:     "사랑은 오래 참고 사랑은 온유하며...",
		Reflection: "오늘 하루, 주변 사람들에게 작은 친절을 베풀어보세요.",
	},
}

// RandomVerse picks uniformly from the built-in pool merged with the
// given history, deduplicated by reference.
func RandomVerse(history []tutor.DailyVerse) tutor.DailyVerse {
	seen := make(map[string]bool, len(Verses)+len(history))
	pool := make([]tutor.DailyVerse, 0, len(Verses)+len(history))
	for _, v := range Verses {
		if !seen[v.Reference] {
			seen[v.Reference] = true
			pool = append(pool, v)
		}
	}
	for _, v := range history {
		if !seen[v.Reference] {
			seen[v.Reference] = true
			pool = append(pool, v)
		}
	}
	return pool[rand.Intn(len(pool))]
}
