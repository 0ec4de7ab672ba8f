package queue_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/utkarsh5026/queueme/queue"
)

var _ = Describe("Pool", func() {
	var p *queue.Pool

	AfterEach(func() {
		if p != nil {
			p.Close()
		}
	})

	Describe("Lifecycle", func() {
		It("drains work pushed before Start once started", func() {
			p = queue.New(queue.WithWorkerCount(2))

			var executed atomic.Int64
			for i := 0; i < 10; i++ {
				Expect(p.Push(func() { executed.Add(1) })).To(BeTrue())
			}
			Consistently(executed.Load, 100*time.Millisecond).Should(Equal(int64(0)))

			p.Start()
			Eventually(executed.Load, 2*time.Second).Should(Equal(int64(10)))
		})

		It("holds queued work across Stop and resumes on Start", func() {
			p = queue.New(queue.WithWorkerCount(1))
			p.Start()

			gate := make(chan struct{})
			var executed atomic.Int64
			p.Push(func() { <-gate; executed.Add(1) })
			p.Push(func() { executed.Add(1) })
			p.Push(func() { executed.Add(1) })

			close(gate)
			p.Stop()
			Expect(p.Running()).To(BeFalse())

			remaining := p.Len()
			Consistently(p.Len, 100*time.Millisecond).Should(Equal(remaining))

			p.Start()
			Eventually(executed.Load, 2*time.Second).Should(Equal(int64(3)))
		})

		It("rejects pushes once closed", func() {
			p = queue.New(queue.WithWorkerCount(1))
			p.Start()
			p.Close()

			Expect(p.Push(func() {})).To(BeFalse())
		})
	})

	Describe("Resizing", func() {
		It("reports the requested steady state as soon as the call returns", func() {
			p = queue.New(queue.WithWorkerCount(1))
			p.Start()

			p.SetWorkerCount(6)
			Expect(p.Workers()).To(Equal(6))

			p.SetWorkerCount(0)
			Expect(p.Workers()).To(Equal(0))
			Expect(p.Running()).To(BeTrue())
		})

		It("serializes concurrent administrative calls to a coherent result", func() {
			p = queue.New(queue.WithWorkerCount(2))
			p.Start()

			var wg sync.WaitGroup
			for i := 0; i < 6; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					p.SetWorkerCount(i + 1)
				}()
			}
			wg.Wait()

			final := p.Workers()
			Expect(final).To(BeNumerically(">=", 1))
			Expect(final).To(BeNumerically("<=", 6))

			var executed atomic.Int64
			p.Push(func() { executed.Add(1) })
			Eventually(executed.Load, 2*time.Second).Should(Equal(int64(1)))
		})
	})

	Describe("Teardown", func() {
		It("completes in-flight and queued work before Close returns", func() {
			p = queue.New(queue.WithWorkerCount(3))
			p.Start()

			var executed atomic.Int64
			for i := 0; i < 30; i++ {
				p.Push(func() {
					time.Sleep(time.Millisecond)
					executed.Add(1)
				})
			}

			p.Close()
			Expect(executed.Load()).To(Equal(int64(30)))
		})

		It("leaks no goroutines", func() {
			before := runtime.NumGoroutine()

			local := queue.New(queue.WithWorkerCount(8))
			local.Start()
			for i := 0; i < 50; i++ {
				local.Push(func() { time.Sleep(time.Millisecond) })
			}
			local.Close()

			Eventually(runtime.NumGoroutine, 2*time.Second).Should(BeNumerically("<=", before))
		})
	})

	Describe("Futures", func() {
		It("completes with the invoker's result", func() {
			p = queue.New(queue.WithWorkerCount(2))
			p.Start()

			f := queue.Async(p, func() (string, error) {
				return "payload", nil
			})

			Eventually(f.Done(), 2*time.Second).Should(BeClosed())
			got, err := f.Get()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("payload"))
		})

		It("fails fast on a closed pool", func() {
			p = queue.New(queue.WithWorkerCount(1))
			p.Start()
			p.Close()

			f := queue.Async(p, func() (int, error) { return 1, nil })
			Expect(f.IsReady()).To(BeTrue())
			_, err := f.Get()
			Expect(err).To(MatchError(queue.ErrPoolClosed))
		})
	})
})
