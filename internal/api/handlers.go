// ABOUTME: Route handlers for the betta API.
// ABOUTME: POST bodies are applied over the current record, so partial updates work.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harperreed/betta/internal/models"
)

func (s *Server) getStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := s.tracker.Report()
	s.metrics.healthScore.Set(float64(report.Score))
	c.JSON(http.StatusOK, gin.H{
		"guest":    s.tracker.IsGuest(),
		"owner_id": s.tracker.OwnerID(),
		"snapshot": s.tracker.Snapshot(),
		"report":   report,
	})
}

func (s *Server) getTank(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.tracker.Snapshot().Tank)
}

func (s *Server) postTank(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tank := s.tracker.Snapshot().Tank
	if err := c.ShouldBindJSON(&tank); err != nil {
		s.badRequest(c, err)
		return
	}
	tank.ID, tank.CreatedAt = uuid.Nil, time.Time{}
	if err := s.tracker.SaveTank(c.Request.Context(), &tank); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.records.WithLabelValues("tanks").Inc()
	c.JSON(http.StatusCreated, tank)
}

func (s *Server) getFish(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.tracker.Snapshot().Fish)
}

func (s *Server) postFish(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fish := s.tracker.Snapshot().Fish
	if err := c.ShouldBindJSON(&fish); err != nil {
		s.badRequest(c, err)
		return
	}
	fish.ID, fish.CreatedAt = uuid.Nil, time.Time{}
	if err := s.tracker.SaveFish(c.Request.Context(), &fish); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.records.WithLabelValues("fish").Inc()
	c.JSON(http.StatusCreated, fish)
}

func (s *Server) listWater(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.tracker.WaterHistory(c.Request.Context(), limit(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"water_readings": readings})
}

func (s *Server) postWater(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.tracker.Snapshot().Water
	if err := c.ShouldBindJSON(&w); err != nil {
		s.badRequest(c, err)
		return
	}
	w.ID, w.CreatedAt = uuid.Nil, time.Time{}
	if err := s.tracker.AddWaterReading(c.Request.Context(), &w); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.records.WithLabelValues("water_readings").Inc()
	c.JSON(http.StatusCreated, w)
}

func (s *Server) listFeedings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.tracker.FeedingHistory(c.Request.Context(), limit(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeding_logs": logs})
}

func (s *Server) postFeeding(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f models.FeedingLog
	if err := c.ShouldBindJSON(&f); err != nil {
		s.badRequest(c, err)
		return
	}
	f.ID, f.CreatedAt = uuid.Nil, time.Time{}
	if err := s.tracker.LogFeeding(c.Request.Context(), &f); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.records.WithLabelValues("feeding_logs").Inc()
	c.JSON(http.StatusCreated, f)
}

func (s *Server) todaysFeedings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today, err := s.tracker.TodaysFeedings()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedings": today})
}

func (s *Server) listWaterChanges(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes, err := s.tracker.WaterChangeHistory(c.Request.Context(), limit(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"water_changes": changes})
}

func (s *Server) postWaterChange(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wc models.WaterChange
	if err := c.ShouldBindJSON(&wc); err != nil {
		s.badRequest(c, err)
		return
	}
	wc.ID, wc.CreatedAt = uuid.Nil, time.Time{}
	if err := s.tracker.LogWaterChange(c.Request.Context(), &wc); err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.records.WithLabelValues("water_changes").Inc()
	c.JSON(http.StatusCreated, wc)
}

func (s *Server) listReminders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.tracker.Reminders()
	if err != nil {
		s.fail(c, err)
		return
	}
	overdue, err := s.tracker.OverdueReminders()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "overdue": overdue})
}

func (s *Server) completeReminder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.tracker.CompleteReminder(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
