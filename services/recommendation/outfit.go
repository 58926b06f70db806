// Copyright 2026 PlanMate <dev@planmate.site>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommendation

import (
	"fmt"
	"strings"
)

// outfitPrompt builds the prompt asking Gemini for an outfit recommendation
// covering the whole trip.
func outfitPrompt(weatherReport string) string {
	return strings.TrimSpace(fmt.Sprintf(`
당신은 여행 패션 전문가입니다. 다음 여행 정보를 바탕으로 적절한 옷차림을 "종합적"으로 추천해주세요.

📍 여행 정보:
%s

다음 형식으로 답변해주세요:
1. 종합 추천 (날씨 요약 및 전반적인 옷차림)
2. 👕 남성 옷차림 추천
3. 👗 여성 옷차림 추천
4. 날짜별 팁 (필요시 간단하게)
5. 필수 준비물 (예: 우산, 선크림, 핫팩)

답변은 친근하고 실용적인 한국어 어조로 작성해주세요.
**매우 중요: 답변에 마크다운 강조문(`+"`**`, `##`"+`)을 절대 사용하지 말고, 답변해주세요.**
`, weatherReport))
}

// ruleBasedOutfit is the fallback recommendation used when Gemini is not
// available or fails. Temperature bands drive the outfit, the description
// and humidity add preparation advice.
func ruleBasedOutfit(temp float64, description string, humidity int) string {
	var outfit string
	var items []string
	var advice string

	switch {
	case temp >= 28:
		outfit = "반팔 티셔츠와 반바지 또는 린넨 소재의 가벼운 옷"
		items = []string{"선글라스", "모자", "선크림", "물병"}
		advice = "매우 더운 날씨입니다. 수분 섭취에 유의하세요!"
	case temp >= 23:
		outfit = "반팔 티셔츠와 청바지, 면 소재 옷"
		items = []string{"얇은 가디건", "선글라스", "모자"}
		advice = "쾌적한 날씨입니다. 일교차에 대비해 얇은 겉옷을 준비하세요."
	case temp >= 20:
		outfit = "긴팔 티셔츠, 얇은 니트"
		items = []string{"가벼운 재킷", "편한 신발"}
		advice = "선선한 날씨입니다. 활동하기 좋은 온도예요!"
	case temp >= 17:
		outfit = "긴팔 셔츠에 가디건 또는 자켓"
		items = []string{"스카프", "편한 운동화"}
		advice = "약간 쌀쌀합니다. 겉옷을 꼭 챙기세요."
	case temp >= 12:
		outfit = "니트나 맨투맨에 자켓"
		items = []string{"목도리", "바람막이"}
		advice = "쌀쌀한 날씨입니다. 따뜻하게 입으세요."
	case temp >= 5:
		outfit = "두꺼운 코트와 기모 옷"
		items = []string{"목도리", "장갑", "방한 모자"}
		advice = "추운 날씨입니다. 방한 준비를 철저히 하세요."
	default:
		outfit = "패딩과 방한 장비"
		items = []string{"두꺼운 목도리", "방한 장갑", "방한 모자", "핫팩"}
		advice = "매우 추운 날씨입니다. 여러 겹 레이어드로 입으세요!"
	}

	if strings.Contains(description, "비") || strings.Contains(strings.ToLower(description), "rain") {
		items = append(items, "우산", "방수 재킷", "방수 신발")
		advice += " 비가 예상되니 우산과 방수 용품을 준비하세요."
	}
	if strings.Contains(description, "눈") || strings.Contains(strings.ToLower(description), "snow") {
		items = append(items, "방수 부츠", "미끄럼 방지 신발")
		advice += " 눈이 예상되니 미끄럼 방지 신발을 신으세요."
	}
	if humidity >= 80 {
		advice += " 습도가 높으니 통풍이 잘 되는 옷을 입으세요."
	}

	return strings.TrimSpace(fmt.Sprintf(`
👔 추천 옷차림:
%s

🎒 필수 준비물:
%s

💡 여행 팁:
%s
`, outfit, strings.Join(items, ", "), advice))
}
