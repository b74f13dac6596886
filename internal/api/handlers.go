package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkovacs/financ/internal/domain/money"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

type accountResponse struct {
	GUID          string `json:"guid"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	CommodityGUID string `json:"commodity_guid"`
	ParentGUID    string `json:"parent_guid,omitempty"`
	Description   string `json:"description,omitempty"`
	Hidden        bool   `json:"hidden"`
	Placeholder   bool   `json:"placeholder"`
}

type commodityResponse struct {
	GUID      string `json:"guid"`
	Namespace string `json:"namespace"`
	Mnemonic  string `json:"mnemonic"`
	Fullname  string `json:"fullname,omitempty"`
	Fraction  int64  `json:"fraction"`
}

type splitResponse struct {
	SplitGUID   string `json:"split_guid"`
	TxGUID      string `json:"tx_guid"`
	AccountGUID string `json:"account_guid"`
	Memo        string `json:"memo,omitempty"`
	Value       string `json:"value"`
	Quantity    string `json:"quantity"`
	PostDate    string `json:"post_date"`
	Description string `json:"description,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryLimit(c *gin.Context) int64 {
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil || limit <= 0 {
		return storage.DefaultListLimit
	}
	return limit
}

func (s *Server) handleAccounts(c *gin.Context) {
	accounts, err := s.repo.Accounts(storage.AccountQuery{
		Limit:      queryLimit(c),
		Name:       c.Query("name"),
		ParentGUID: c.Query("parent"),
		GUID:       c.Query("guid"),
		Type:       c.Query("type"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountResponse{
			GUID:          a.GUID,
			Name:          a.Name,
			Type:          a.Type,
			CommodityGUID: a.CommodityGUID,
			ParentGUID:    a.ParentGUID,
			Description:   a.Description,
			Hidden:        a.Hidden,
			Placeholder:   a.Placeholder,
		})
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

func (s *Server) handleCommodities(c *gin.Context) {
	commodities, err := s.repo.Commodities(storage.CommodityQuery{
		Limit:     queryLimit(c),
		Name:      c.Query("name"),
		Namespace: c.Query("namespace"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]commodityResponse, 0, len(commodities))
	for _, cm := range commodities {
		out = append(out, commodityResponse{
			GUID:      cm.GUID,
			Namespace: cm.Namespace,
			Mnemonic:  cm.Mnemonic,
			Fullname:  cm.Fullname,
			Fraction:  cm.Fraction,
		})
	}
	c.JSON(http.StatusOK, gin.H{"commodities": out})
}

func (s *Server) handleTransactions(c *gin.Context) {
	q := storage.TransactionQuery{
		Limit:       queryLimit(c),
		TxGUID:      c.Query("txid"),
		AccountGUID: c.Query("account"),
		Memo:        c.Query("memo"),
		Description: c.Query("description"),
	}
	if v := c.Query("after"); v != "" {
		d, err := money.ParseDay(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		q.After = &d
	}
	if v := c.Query("before"); v != "" {
		d, err := money.ParseDay(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		q.Before = &d
	}

	pairs, err := s.repo.SplitTransactions(q)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]splitResponse, 0, len(pairs))
	for _, p := range pairs {
		resp := splitResponse{
			SplitGUID:   p.Split.GUID,
			TxGUID:      p.Split.TxGUID,
			AccountGUID: p.Split.AccountGUID,
			Memo:        p.Split.Memo,
			PostDate:    p.Transaction.PostDate,
			Description: p.Transaction.Description,
		}
		if value, err := p.Split.Value(); err == nil {
			resp.Value = value.String()
		}
		if quantity, err := p.Split.Quantity(); err == nil {
			resp.Quantity = quantity.String()
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"splits": out})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed",
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
