package textview

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/lively/anim"
)

// DefaultAutoAdvance 是没有翻页输入时建议的自动翻页等待时间。
const DefaultAutoAdvance = time.Second

// SpeakerOptions 配置逐页"说话"的节奏。
type SpeakerOptions struct {
	// TickInterval 为动画帧间隔，默认 1/60 秒。
	TickInterval time.Duration
	// AutoAdvance 为打字结束后自动翻页的等待时间，0 表示等待 Advance。
	AutoAdvance time.Duration
	// OnFrame 在每次需要重绘的帧之后调用，参数为当前页码。
	OnFrame func(page int)
	// OnPage 在每页开始打字时调用。
	OnPage func(page int)
	Logger *zap.Logger
}

// Speaker 以打字机效果逐页显示文本。
type Speaker struct {
	view    *View
	opts    SpeakerOptions
	advance chan struct{}
	log     *zap.Logger
}

// NewSpeaker 创建 Speaker。view 的驱动中应包含一个绑定到 anim.TypewriterTag 的打字机。
func NewSpeaker(view *View, opts SpeakerOptions) *Speaker {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Speaker{
		view:    view,
		opts:    opts,
		advance: make(chan struct{}, 1),
		log:     opts.Logger.Named("speaker"),
	}
}

// Wrap 用打字机标签包裹文本。
func Wrap(text string) string {
	return fmt.Sprintf("<anim=%s>%s</anim>", anim.TypewriterTag, text)
}

// Say 设置要说的文本，回到第一页并开始打字。
func (s *Speaker) Say(text string) error {
	if err := s.view.SetText(Wrap(text)); err != nil {
		return err
	}
	s.view.SetPage(1)
	s.startPage()
	return nil
}

// Advance 请求前进：正在打字时先显示完整页面，否则翻到下一页。不会阻塞。
func (s *Speaker) Advance() {
	select {
	case s.advance <- struct{}{}:
	default:
	}
}

// Run 驱动动画直到最后一页显示完毕并被翻过，或 ctx 被取消。
func (s *Speaker) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	var idle time.Duration
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if s.view.Tick(dt) && s.opts.OnFrame != nil {
				s.opts.OnFrame(s.view.Page())
			}
			if !s.view.AnimationsDone() || s.opts.AutoAdvance <= 0 {
				idle = 0
				continue
			}
			idle += dt
			if idle < s.opts.AutoAdvance {
				continue
			}
			idle = 0
			if !s.next() {
				return nil
			}
		case <-s.advance:
			if !s.view.AnimationsDone() {
				s.view.SkipAnimations()
				if s.opts.OnFrame != nil {
					s.opts.OnFrame(s.view.Page())
				}
				continue
			}
			idle = 0
			if !s.next() {
				return nil
			}
		}
	}
}

func (s *Speaker) next() bool {
	if !s.view.NextPage() {
		s.log.Debug("last page finished")
		return false
	}
	s.startPage()
	return true
}

func (s *Speaker) startPage() {
	s.view.StartAnimations()
	page := s.view.Page()
	s.log.Debug("page started", zap.Int("page", page))
	if s.opts.OnPage != nil {
		s.opts.OnPage(page)
	}
}
