package content

import "speakflow/internal/tutor"

// Scenario is one guided role-play setting.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
	AIRole      string
	UserRole    string
	Mission     string
	Initial     tutor.Turn
}

// Scenarios is the built-in role-play set.
var Scenarios = []Scenario{
	{
		ID:          "cafe",
		Title:       "Cafe Order",
		Description: "Order a coffee from a barista.",
		Difficulty:  "Easy",
		AIRole:      "Barista",
		UserRole:    "Customer",
		Mission:     "Order an Iced Americano and ask for extra shot.",
		Initial: tutor.Turn{
			Role:    tutor.RoleAssistant,
			English: "Hi there! What can I get for you today?",
			Korean:  "안녕하세요! 주문하시겠어요?",
		},
	},
	{
		ID:          "airport",
		Title:       "Immigration",
		Description: "Answer questions at the airport.",
		Difficulty:  "Medium",
		AIRole:      "Officer",
		UserRole:    "Traveler",
		Mission:     "Explain that you are here for a 5-day vacation.",
		Initial: tutor.Turn{
			Role:    tutor.RoleAssistant,
			English: "Passport please. What is the purpose of your visit?",
			Korean:  "여권 주세요. 방문 목적이 무엇인가요?",
		},
	},
	{
		ID:          "hotel",
		Title:       "Hotel Check-in",
		Description: "Check into your hotel room.",
		Difficulty:  "Easy",
		AIRole:      "Receptionist",
		UserRole:    "Guest",
		Mission:     "Check in and ask about the breakfast time.",
		Initial: tutor.Turn{
			Role:    tutor.RoleAssistant,
			English: "Welcome to Grand Hotel. How can I help you?",
			Korean:  "그랜드 호텔에 오신 것을 환영합니다. 무엇을 도와드릴까요?",
		},
	},
	{
		ID:          "shopping",
		Title:       "Shopping",
		Description: "Buying clothes at a store.",
		Difficulty:  "Medium",
		AIRole:      "Staff",
		UserRole:    "Customer",
		Mission:     "Ask for a different size and the price.",
		Initial: tutor.Turn{
			Role:    tutor.RoleAssistant,
			English: "Hello! Are you looking for anything special?",
			Korean:  "안녕하세요! 특별히 찾으시는 게 있나요?",
		},
	},
}

// ScenarioByID returns the scenario with the given id.
func ScenarioByID(id string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
