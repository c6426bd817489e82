package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/config"
	infraES "cutmatch-go/internal/infra/elasticsearch"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
)

type SearchService struct {
	hairstyleRepo *repository.HairstyleRepository
	favoriteRepo  *repository.FavoriteRepository
}

func NewSearchService(hairstyleRepo *repository.HairstyleRepository, favoriteRepo *repository.FavoriteRepository) *SearchService {
	return &SearchService{hairstyleRepo: hairstyleRepo, favoriteRepo: favoriteRepo}
}

// SearchHairstyles 搜索发型（ES 优先，失败则降级到 DB 的 LIKE 查询）
func (s *SearchService) SearchHairstyles(callerID int64, req *dto.SearchRequest) (*dto.SearchData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	if infraES.Get() != nil {
		data, err := s.searchFromES(callerID, req)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}
	return s.searchFromDB(callerID, req)
}

func (s *SearchService) searchFromES(callerID int64, req *dto.SearchRequest) (*dto.SearchData, error) {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["hairstyles"]
	if indexName == "" {
		indexName = "hairstyles"
	}

	query := s.buildESQuery(req)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}

	total := esResp.Hits.Total.Value
	if len(ids) == 0 {
		return &dto.SearchData{
			Hairstyles: []dto.HairstyleInfo{},
			Total:      total,
			Page:       req.Page,
			PageSize:   req.PageSize,
			Source:     "elasticsearch",
		}, nil
	}

	hairstyles, err := s.hairstyleRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	// 保持 ES 的相关度排序
	byID := make(map[int64]*model.Hairstyle, len(hairstyles))
	for i := range hairstyles {
		byID[hairstyles[i].ID] = &hairstyles[i]
	}
	ordered := make([]model.Hairstyle, 0, len(ids))
	for _, id := range ids {
		if h, ok := byID[id]; ok {
			ordered = append(ordered, *h)
		}
	}

	infos, err := s.buildInfos(ordered, callerID)
	if err != nil {
		return nil, err
	}

	return &dto.SearchData{
		Hairstyles: infos,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Source:     "elasticsearch",
	}, nil
}

func (s *SearchService) buildESQuery(req *dto.SearchRequest) map[string]interface{} {
	must := []interface{}{
		map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     strings.TrimSpace(req.Keyword),
				"fields":    []string{"name^3", "tags^2", "description"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		},
	}

	filter := []interface{}{}
	if req.Gender != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"gender": req.Gender},
		})
	}
	if req.FaceShape != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"suitable_face_shapes": req.FaceShape},
		})
	}
	if req.MinRating > 0 {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{
				"average_rating": map[string]interface{}{"gte": req.MinRating},
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"from": (req.Page - 1) * req.PageSize,
		"size": req.PageSize,
	}
}

func (s *SearchService) searchFromDB(callerID int64, req *dto.SearchRequest) (*dto.SearchData, error) {
	skip := (req.Page - 1) * req.PageSize
	hairstyles, total, err := s.hairstyleRepo.ListWithFilters(skip, req.PageSize, repository.HairstyleFilters{
		Gender:    req.Gender,
		FaceShape: req.FaceShape,
		MinRating: req.MinRating,
		Keyword:   strings.TrimSpace(req.Keyword),
	})
	if err != nil {
		return nil, err
	}

	infos, err := s.buildInfos(hairstyles, callerID)
	if err != nil {
		return nil, err
	}

	return &dto.SearchData{
		Hairstyles: infos,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Source:     "database",
	}, nil
}

func (s *SearchService) buildInfos(hairstyles []model.Hairstyle, callerID int64) ([]dto.HairstyleInfo, error) {
	favorited := map[int64]bool{}
	if callerID > 0 && len(hairstyles) > 0 {
		ids := make([]int64, 0, len(hairstyles))
		for i := range hairstyles {
			ids = append(ids, hairstyles[i].ID)
		}
		var err error
		favorited, err = s.favoriteRepo.BatchCheckFavorited(callerID, ids)
		if err != nil {
			return nil, err
		}
	}

	infos := make([]dto.HairstyleInfo, 0, len(hairstyles))
	for i := range hairstyles {
		infos = append(infos, *toHairstyleInfo(&hairstyles[i], favorited[hairstyles[i].ID]))
	}
	return infos, nil
}
