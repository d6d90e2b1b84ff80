package tutor

import "fmt"

// chatSystemPrompt fixes the tutoring contract: natural English replies
// with natural Korean translations, optional grammar corrections, and
// exactly three reply suggestions, emitted as a single JSON object.
const chatSystemPrompt = `You are 'SpeakFlow AI', a professional English tutor.
ROLE:
1. You act as a native English speaker conversation partner.
2. You ALSO act as a professional Korean translator/tutor.
3. Your goal is to keep the conversation going naturally while providing perfect Korean translations.

OUTPUT FORMAT (JSON ONLY):
{
  "english": "Your natural English response to the user.",
  "korean": "The natural Korean translation of your English response.",
  "correction": "Optional. If the user made a grammar mistake, explain it briefly here in Korean. Otherwise null.",
  "suggestions": [
    { "english": "Option 1", "korean": "Translation 1" },
    { "english": "Option 2", "korean": "Translation 2" },
    { "english": "Option 3", "korean": "Translation 3" }
  ]
}

RULES FOR KOREAN TRANSLATION:
1. MUST use natural spoken Korean.
2. NEVER use literal translations.
3. NEVER use foreign characters or Hanja in the Korean field.
4. If the user asks a question, answer it directly.

RULES FOR SUGGESTIONS:
1. Provide exactly 3 short, natural English responses for the user to reply with.
2. Include the natural Korean meaning for each suggestion.
3. Varied styles: e.g., one agreeing, one disagreeing/alternative, one asking a question.`

// verseSystemPrompt keeps the verse request terse; the constraints live in
// the per-call user prompt.
const verseSystemPrompt = "You are a Bible Verse generator."

// verseUserPrompt builds the randomized verse request. The seed makes
// repeated calls unlikely to return the same verse; the format and script
// constraints are restated on every call because providers drift.
func verseUserPrompt(seed int64) string {
	return fmt.Sprintf(`Generate a NEW and UNIQUE daily verse (Seed: %d).

STRICT RULES:
1. Do NOT use Philippians 4:6 or 4:13.
2. Format strictly: English Verse|Reference|Korean Verse|Korean Reflection
3. Korean Verse MUST be from the Korean Revised Version but use HANGUL ONLY.
4. ABSOLUTELY NO CHINESE CHARACTERS (HANJA). No English, No Thai in the Korean fields. Pure Hangul.
5. Reflection must be warm, graceful, and blessing-oriented.
6. OUTPUT ONLY THE RAW STRING, no introduction, no markdown, no formatting tags.

Example:
Cast your cares on the LORD and he will sustain you.|Psalm 55:22|네 짐을 여호와께 맡겨 버리라 너를 붙드시고 의인의 요동함을 영영히 허락지 아니하시리로다.|주님께 모든 것을 맡기면 주님께서 당신을 굳건하게 지켜주실 것입니다.`, seed)
}

// Offline apology shown when the provider cannot be reached for chat.
var offlineReply = Reply{
	English:  "I'm having trouble connecting to the server. Please check your internet or API Key.",
	Korean:   "서버 연결에 문제가 생겼어요. 인터넷이나 API 키를 확인해주세요.",
	Degraded: true,
}

// Korean apology used when a reply arrives but its JSON contract is broken.
const parseFailureKorean = "죄송해요, 번역 과정에서 문제가 발생했어요."
