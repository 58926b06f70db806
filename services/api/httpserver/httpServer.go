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

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/services/chat"
	"github.com/planmate/planmate-ai/services/pricing"
	"github.com/planmate/planmate-ai/services/recommendation"
	"github.com/planmate/planmate-ai/version"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var log = logrus.WithField("component", "httpserver")

var infos = openapi.Info{
	Title: "여행 날씨 기반 옷차림 추천 API",
	Description: "여행지, 날짜, 기간을 입력받아 날씨와 옷차림을 추천합니다.\n" +
		"\n" +
		"The API is composed of three groups of routes:\n" +
		"- [Recommendation](#tag/Recommendation)\n" +
		"- [Chatbot](#tag/Chatbot)\n" +
		"- [Price](#tag/Price)\n",
	Version: version.Version,
}

type Server struct {
	http.Server
	recommendations *recommendation.Service
	chatbot         *chat.Service
	pricing         *pricing.Service
	tokenSecret     string

	gin  *gin.Engine
	fizz *fizz.Fizz
}

//nolint:lll
func New(
	port uint,
	recommendationService *recommendation.Service,
	chatService *chat.Service,
	pricingService *pricing.Service,
	allowedOrigins []string,
	tokenSecret string,
) (*Server, error) {
	// Debug mode can be helpful during development
	gin.SetMode(gin.ReleaseMode)
	//gin.SetMode(gin.DebugMode)

	tonic.SetErrorHook(tonicErrorHook)

	ginEngine := gin.New()
	fizzEngine := fizz.NewFromEngine(ginEngine)

	server := &Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: fizzEngine,
		},
		recommendations: recommendationService,
		chatbot:         chatService,
		pricing:         pricingService,
		tokenSecret:     tokenSecret,
		gin:             ginEngine,
		fizz:            fizzEngine,
	}

	server.gin.HandleMethodNotAllowed = true

	err := overrideTypes(server.fizz.Generator())
	if err != nil {
		return nil, err
	}

	// The web front end is served from its own origin
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders(authorizationHeaderKey)

	server.fizz.Use(cors.New(corsConfig))

	// Use a custom error handler
	server.fizz.Use(ginErrorHandlerMiddleware)

	// Use the custom logger middleware
	server.fizz.Use(ginLoggerMiddleware)

	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	server.fizz.Use(gin.Recovery())

	server.fizz.GET("/", []fizz.OperationOption{
		fizz.Summary("Retrieve information about this API"),
	}, tonic.Handler(server.getInfo, http.StatusOK))

	server.fizz.GET("/health", []fizz.OperationOption{
		fizz.Summary("Check that the service is up"),
	}, tonic.Handler(server.getHealth, http.StatusOK))

	server.fizz.GET("/openapi.json", []fizz.OperationOption{
		fizz.Summary("Retrieve the open api specification"),
		fizz.Response("500", "Bad server configuration or state", httpError{}, nil, nil),
	}, server.fizz.OpenAPI(&infos, "json"))

	recommendationGroup := server.fizz.Group(
		"/recommendations",
		"Recommendation",
		"Per-day weather and outfit recommendations for a trip.",
	)
	recommendationGroup.POST("", []fizz.OperationOption{
		fizz.Summary("Recommend outfits for a trip"),
		fizz.Description("여행 도시, 시작일, 종료일을 받아 일자별 날씨와 종합 옷차림 추천을 JSON으로 반환합니다."),
		fizz.Response("400", "Invalid city or trip dates", httpError{}, nil, nil),
		fizz.Response("401", "Invalid service token", httpError{}, nil, nil),
		fizz.Response("500", "Bad server configuration or state", httpError{}, nil, nil),
	}, tonic.Handler(server.recommend, http.StatusOK))

	chatbotGroup := server.fizz.Group(
		"/api/chatbot",
		"Chatbot",
		"Plan chatbot turns relayed by the upstream plan server.",
	)
	chatbotGroup.POST("/generate", []fizz.OperationOption{
		fizz.Summary("Run a chatbot turn"),
		fizz.Description("플랜 서버로부터 컨텍스트와 메시지를 받아 Gemini를 호출하고, 처리된 액션 응답을 반환합니다."),
		fizz.Response("401", "Invalid service token", httpError{}, nil, nil),
		fizz.Response("500", "Bad server configuration or state", httpError{}, nil, nil),
	}, tonic.Handler(server.generateChatTurn, http.StatusOK))

	priceGroup := server.fizz.Group(
		"/price",
		"Price",
		"Trip cost prediction from the plan time tables and place blocks.",
	)
	priceGroup.POST("", []fizz.OperationOption{
		fizz.Summary("Predict trip costs"),
		fizz.Description("주어진 입력 데이터(식당, 숙소, 인원수)를 기반으로 1인당 및 총 여행 경비를 예측합니다."),
		fizz.Response("400", "Invalid headcount", httpError{}, nil, nil),
		fizz.Response("401", "Invalid service token", httpError{}, nil, nil),
		fizz.Response("500", "Bad server configuration or state", httpError{}, nil, nil),
	}, tonic.Handler(server.predictPrice, http.StatusOK))

	ginEngine.NoRoute(func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusNotFound, fmt.Errorf("not found"))
	})

	ginEngine.NoMethod(func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	})

	return server, nil
}

// overrideTypes teaches the openapi generator the wire format of the custom
// scalar types, by default their reflection would describe them as objects.
func overrideTypes(generator *openapi.Generator) error {
	err := generator.OverrideDataType(reflect.TypeOf(api.ClockTime{}), "string", "partial-time")
	if err != nil {
		return err
	}
	err = generator.OverrideDataType(reflect.TypeOf(api.CalendarDate("")), "string", "date")
	if err != nil {
		return err
	}
	return generator.OverrideDataType(reflect.TypeOf(json.RawMessage{}), "object", "")
}

func (server *Server) GenerateOpenAPISpec(outputFile string) error {
	f, _ := os.Create(outputFile)
	defer f.Close()

	server.fizz.Generator().SetInfo(&infos)
	serializedJSON, err := json.MarshalIndent(server.fizz.Generator().API(), "", "\t")
	if err != nil {
		return err
	}
	_, err = f.Write(serializedJSON)
	if err != nil {
		return err
	}
	return nil
}

type response struct {
	Message string `json:"message" description:"Human-readable response description"`
}

type infoResponse struct {
	response
	Version     string `json:"version" description:"PlanMate AI Version"`
	VersionHash string `json:"version_hash"`
}

func (server *Server) getInfo(*gin.Context) (infoResponse, error) {
	return infoResponse{
		response: response{
			Message: "This is the PlanMate AI API",
		},
		Version:     version.Version,
		VersionHash: version.Hash,
	}, nil
}

func (server *Server) getHealth(*gin.Context) (response, error) {
	return response{
		Message: "ok",
	}, nil
}

const (
	authorizationHeaderKey = "Authorization"
	bearerTokenPrefix      = "Bearer "
)

//nolint:lll
type serviceRequest struct {
	Authorization string `header:"Authorization" description:"Bearer token issued with the configured API secret, only required when the server is started with one."`
}

func (server *Server) checkServiceToken(authorization string) error {
	if server.tokenSecret == "" {
		return nil
	}

	if !strings.HasPrefix(authorization, bearerTokenPrefix) {
		return wrapError(
			http.StatusUnauthorized,
			fmt.Errorf("Missing bearer token in header [%s]", authorizationHeaderKey),
		)
	}

	tokenString := strings.TrimPrefix(authorization, bearerTokenPrefix)
	if _, err := ParseAndVerifyToken(tokenString, server.tokenSecret); err != nil {
		return wrapError(
			http.StatusUnauthorized,
			fmt.Errorf("Unable to validate token from header [%s] (%w)", authorizationHeaderKey, err),
		)
	}
	return nil
}

type recommendationRequest struct {
	serviceRequest
	api.WeatherRecommendationRequest
}

//nolint:lll
func (server *Server) recommend(c *gin.Context, request *recommendationRequest) (*api.WeatherRecommendationResponse, error) {
	if err := server.checkServiceToken(request.Authorization); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"city":       request.City,
		"start_date": request.StartDate,
		"end_date":   request.EndDate,
	}).Info("generating recommendations")

	res, err := server.recommendations.Generate(c, &request.WeatherRecommendationRequest)
	if err != nil {
		var invalidErr *recommendation.InvalidRequestError
		if errors.As(err, &invalidErr) {
			return nil, wrapError(http.StatusBadRequest, err)
		}
		return nil, wrapError(http.StatusInternalServerError, err)
	}
	return res, nil
}

type chatbotGenerateRequest struct {
	serviceRequest
	api.ChatRequest
}

//nolint:lll
func (server *Server) generateChatTurn(c *gin.Context, request *chatbotGenerateRequest) (*api.ChatActionResponse, error) {
	if err := server.checkServiceToken(request.Authorization); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"plan_id": request.PlanID,
	}).Info("running a chatbot turn")

	return server.chatbot.Generate(c, &request.ChatRequest)
}

type pricePredictionRequest struct {
	serviceRequest
	api.PricePredictionRequest
}

//nolint:lll
func (server *Server) predictPrice(c *gin.Context, request *pricePredictionRequest) (*api.PricePredictionResponse, error) {
	if err := server.checkServiceToken(request.Authorization); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"headcount":    request.Headcount,
		"place_blocks": len(request.PlaceBlocks),
	}).Info("predicting trip costs")

	res, err := server.pricing.Predict(c, &request.PricePredictionRequest)
	if err != nil {
		var invalidErr *pricing.InvalidRequestError
		if errors.As(err, &invalidErr) {
			return nil, wrapError(http.StatusBadRequest, err)
		}
		return nil, wrapError(http.StatusInternalServerError, err)
	}
	return res, nil
}
