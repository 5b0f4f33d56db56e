package hookgen

// preamble is the measurement runtime emitted once at the top of every
// generated unit. The frame stack is a fixed array on purpose: growing it on
// the instrumented path would allocate and distort the timings being
// measured. Depth keeps incrementing past capacity so push/pop stay balanced
// under deep recursion; frames beyond capacity simply measure nothing.
//
// The runtime is not thread-safe: concurrent first calls race on symbol
// resolution and all calls share the depth counter. Known limitation.
const preamble = `/* Generated by libhook. Do not edit. */
#define _GNU_SOURCE
#include <dlfcn.h>
#include <stdio.h>
#include <time.h>
#include <unistd.h>
#include <sys/time.h>
#include <sys/resource.h>

#define LIBHOOK_MAX_DEPTH 256

struct libhook_frame {
    struct timespec t_start;
    struct rusage ru_start;
};

struct libhook_measurement {
    long long start_us;
    long long dur_us;
    struct rusage ru_start;
    struct rusage ru_end;
};

static struct libhook_frame libhook_stack[LIBHOOK_MAX_DEPTH];
static int libhook_depth = 0;
static pid_t libhook_pid = 0;

static void libhook_enter(void)
{
    if (libhook_depth < LIBHOOK_MAX_DEPTH) {
        struct libhook_frame *f = &libhook_stack[libhook_depth];
        clock_gettime(CLOCK_MONOTONIC, &f->t_start);
        getrusage(RUSAGE_SELF, &f->ru_start);
    }
    libhook_depth++;
}

static int libhook_exit(struct libhook_measurement *m)
{
    struct timespec t_end;
    struct libhook_frame *f;
    long long end_us;

    libhook_depth--;
    if (libhook_depth >= LIBHOOK_MAX_DEPTH)
        return 0;
    f = &libhook_stack[libhook_depth];
    clock_gettime(CLOCK_MONOTONIC, &t_end);
    getrusage(RUSAGE_SELF, &m->ru_end);
    m->ru_start = f->ru_start;
    m->start_us = (long long)f->t_start.tv_sec * 1000000LL + f->t_start.tv_nsec / 1000;
    end_us = (long long)t_end.tv_sec * 1000000LL + t_end.tv_nsec / 1000;
    m->dur_us = end_us - m->start_us;
    if (libhook_pid == 0)
        libhook_pid = getpid();
    return 1;
}
`
