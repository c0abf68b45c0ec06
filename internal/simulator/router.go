package simulator

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/ktnyt/labmon/internal/operator"
)

// RouterConfig tunes the HTTP front of the simulator.
type RouterConfig struct {
	// RateLimit and Burst bound POSTs per client IP.
	RateLimit rate.Limit
	Burst     int
	// ReplayTTL is how long a request ID's response is remembered.
	ReplayTTL time.Duration
}

// DefaultRouterConfig allows 10 operations per second with a burst of 5 and
// remembers request IDs for a minute.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{RateLimit: rate.Limit(10), Burst: 5, ReplayTTL: time.Minute}
}

// NewRouter exposes s over the operator HTTP contract.
func NewRouter(s *Simulator, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.log))

	replay := cache.New(cfg.ReplayTTL, 2*cfg.ReplayTTL)

	driver := r.Group("/driver")
	{
		// GET /driver
		driver.GET("", s.getDevices)

		// GET /driver/{name}/state
		driver.GET("/:name/state", s.getState)

		// GET /driver/{name}/status
		driver.GET("/:name/status", s.getStatus)

		// POST /driver/arm/operation
		driver.POST("/"+operator.ArmName+"/operation",
			RateLimiter(cfg.RateLimit, cfg.Burst),
			Replay(replay, cfg.ReplayTTL),
			s.postOperation,
		)
	}
	return r
}

func (s *Simulator) getDevices(c *gin.Context) {
	c.JSON(http.StatusOK, s.Devices())
}

func (s *Simulator) getState(c *gin.Context) {
	name := c.Param("name")
	if name == operator.ArmName {
		c.JSON(http.StatusOK, s.ArmState())
		return
	}
	id, err := operator.ParseStation(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}
	spots, ok := s.StationState(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}
	c.JSON(http.StatusOK, spots)
}

func (s *Simulator) getStatus(c *gin.Context) {
	name := c.Param("name")
	if name == operator.ArmName {
		c.JSON(http.StatusOK, s.ArmStatus())
		return
	}
	id, err := operator.ParseStation(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}
	if _, ok := s.StationState(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}
	// Stations have no actuator of their own.
	c.JSON(http.StatusOK, operator.StatusIdle)
}

func (s *Simulator) postOperation(c *gin.Context) {
	var op operator.Operation
	if err := c.ShouldBindJSON(&op); err != nil || op.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operation"})
		return
	}
	if err := s.Submit(op); err != nil {
		if errors.Is(err, ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": op.String()})
}
