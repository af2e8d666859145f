package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/unidoc/unipdf/v3/creator"
)

// PDFService : собирает печатную версию статьи.
// Markdown описания сводится к простому тексту, абзацы разделяются пустой строкой.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// RenderArticle : формирует PDF со статьёй, её тегами и комментариями
func (s *PDFService) RenderArticle(article *model.Article, reviews []model.Review) ([]byte, error) {
	c := creator.New()
	c.SetPageMargins(50, 50, 60, 60)

	title := c.NewParagraph(article.Title)
	title.SetFontSize(20)
	title.SetMargins(0, 0, 0, 8)
	if err := c.Draw(title); err != nil {
		return nil, fmt.Errorf("[PDFService] ошибка отрисовки заголовка: %w", err)
	}

	meta := c.NewParagraph(s.metaLine(article))
	meta.SetFontSize(10)
	meta.SetColor(creator.ColorRGBFrom8bit(100, 100, 100))
	meta.SetMargins(0, 0, 0, 16)
	if err := c.Draw(meta); err != nil {
		return nil, fmt.Errorf("[PDFService] ошибка отрисовки метаданных: %w", err)
	}

	body, err := util.MarkdownToText(article.Description)
	if err != nil {
		return nil, fmt.Errorf("[PDFService] ошибка преобразования описания: %w", err)
	}

	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		p := c.NewParagraph(block)
		p.SetFontSize(11)
		p.SetLineHeight(1.4)
		p.SetMargins(0, 0, 0, 10)
		if err := c.Draw(p); err != nil {
			return nil, fmt.Errorf("[PDFService] ошибка отрисовки абзаца: %w", err)
		}
	}

	if article.SourceLink != "" {
		link := c.NewParagraph("Источник: " + article.SourceLink)
		link.SetFontSize(10)
		link.SetMargins(0, 0, 6, 0)
		if err := c.Draw(link); err != nil {
			return nil, fmt.Errorf("[PDFService] ошибка отрисовки ссылки: %w", err)
		}
	}

	if len(reviews) > 0 {
		header := c.NewParagraph(fmt.Sprintf("Комментарии (%d)", len(reviews)))
		header.SetFontSize(14)
		header.SetMargins(0, 0, 18, 8)
		if err := c.Draw(header); err != nil {
			return nil, fmt.Errorf("[PDFService] ошибка отрисовки заголовка комментариев: %w", err)
		}

		for _, review := range reviews {
			author := c.NewParagraph(review.OwnerName)
			author.SetFontSize(10)
			author.SetColor(creator.ColorRGBFrom8bit(100, 100, 100))
			author.SetMargins(0, 0, 4, 2)
			if err := c.Draw(author); err != nil {
				return nil, fmt.Errorf("[PDFService] ошибка отрисовки автора комментария: %w", err)
			}

			text := c.NewParagraph(review.Body)
			text.SetFontSize(11)
			text.SetLineHeight(1.3)
			text.SetMargins(0, 0, 0, 8)
			if err := c.Draw(text); err != nil {
				return nil, fmt.Errorf("[PDFService] ошибка отрисовки комментария: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, fmt.Errorf("[PDFService] ошибка записи PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) metaLine(article *model.Article) string {
	parts := []string{article.OwnerName, article.CreatedAt.Format("02.01.2006")}
	if len(article.Tags) > 0 {
		names := make([]string, 0, len(article.Tags))
		for _, tag := range article.Tags {
			names = append(names, tag.Name)
		}
		parts = append(parts, "Теги: "+strings.Join(names, ", "))
	}
	return strings.Join(parts, " · ")
}
