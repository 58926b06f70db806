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

package openweather

// cityNames maps Korean city names to the English names OpenWeatherMap
// understands. Cities missing from the map are passed through as given.
var cityNames = map[string]string{
	// 국내
	"서울": "Seoul",
	"부산": "Busan",
	"인천": "Incheon",
	"대구": "Daegu",
	"대전": "Daejeon",
	"광주": "Gwangju",
	"울산": "Ulsan",
	"제주": "Jeju",
	// 해외
	"도쿄":     "Tokyo",
	"오사카":    "Osaka",
	"교토":     "Kyoto",
	"후쿠오카":   "Fukuoka",
	"삿포로":    "Sapporo",
	"베이징":    "Beijing",
	"상하이":    "Shanghai",
	"홍콩":     "Hong Kong",
	"타이베이":   "Taipei",
	"방콕":     "Bangkok",
	"싱가포르":   "Singapore",
	"하노이":    "Hanoi",
	"호치민":    "Ho Chi Minh City",
	"뉴욕":     "New York",
	"로스앤젤레스": "Los Angeles",
	"런던":     "London",
	"파리":     "Paris",
	"로마":     "Rome",
	"바르셀로나":  "Barcelona",
	"시드니":    "Sydney",
	"멜버른":    "Melbourne",
}

// TranslateCityName converts a Korean city name to its English equivalent
// where one is known.
func TranslateCityName(city string) string {
	if translated, ok := cityNames[city]; ok {
		return translated
	}
	return city
}
